package bootstrap

import "strings"

// SplitStatements splits a SQL script into individual statements so they can
// be executed one by one (database/sql's Exec takes a single statement).
//
// The splitter is line-based: it strips "--" comment lines, terminates a
// statement at a line ending in ';', and treats CREATE TRIGGER bodies as a
// single statement: semicolons between BEGIN and END belong to the trigger
// and must not split it.
func SplitStatements(script string) []string {
	var (
		stmts     []string
		b         strings.Builder
		inTrigger bool
	)

	flush := func() {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if s != "" {
			stmts = append(stmts, s)
		}
	}

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		upper := strings.ToUpper(trimmed)
		if strings.HasPrefix(upper, "CREATE TRIGGER") {
			inTrigger = true
		}

		if inTrigger {
			// A trigger only ends at the END keyword, not at the inner
			// statement terminators.
			if upper == "END;" || strings.HasSuffix(upper, " END;") {
				inTrigger = false
				flush()
			}
			continue
		}

		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}

	// Trailing statement without a terminator.
	flush()

	return stmts
}
