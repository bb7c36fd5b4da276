package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nutridiary/internal/common"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
)

// Scan looks up a product by barcode and prints its label card.
func (a *App) Scan(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	barcode := strings.Join(args, "")
	if barcode == "" {
		if barcode, err = getSimpleText(a.reader, "Barcode", a.out); err != nil {
			return err
		}
	}

	product, err := a.catalog.Scan(ctx, userID, barcode)
	if err != nil {
		return err
	}
	a.printProduct(product)

	fav, err := a.catalog.IsFavorite(ctx, userID, product.ID)
	if err != nil {
		return err
	}
	if fav {
		fmt.Fprintln(a.out, "In your favorites.")
	}
	return nil
}

// Search prints matching products, numbered for use with 'add'.
func (a *App) Search(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	if query == "" {
		if query, err = getSimpleText(a.reader, "Search for", a.out); err != nil {
			return err
		}
	}

	results, err := a.catalog.Search(ctx, userID, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}
	for i, p := range results {
		a.printProductLine(i+1, &p)
	}
	return nil
}

// pickProduct resolves a product for logging: a barcode, a search, or a
// pick from history.
func (a *App) pickProduct(ctx context.Context, userID string) (*models.Product, error) {
	text, err := getSimpleText(a.reader, "Product (barcode, search text, or 'h' for history)", a.out)
	if err != nil {
		return nil, err
	}

	if text == "h" {
		entries, err := a.catalog.History(ctx, userID, 10)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, common.ErrNotFound
		}
		for i, e := range entries {
			fmt.Fprintf(a.out, "%2d. %s%s\n", i+1, e.ProductName, gradeSuffix(e.NutriScore))
		}
		n, err := GetInt(a.reader, "Pick a number", 0, a.out)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > len(entries) {
			return nil, common.ErrNotFound
		}
		return a.catalog.Get(ctx, userID, entries[n-1].ProductID)
	}

	if isBarcode(text) {
		return a.catalog.Scan(ctx, userID, text)
	}

	results, err := a.catalog.Search(ctx, userID, text)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound
	}
	if len(results) == 1 {
		return a.catalog.Get(ctx, userID, results[0].ID)
	}
	for i, p := range results {
		a.printProductLine(i+1, &p)
	}
	n, err := GetInt(a.reader, "Pick a number", 0, a.out)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(results) {
		return nil, common.ErrNotFound
	}
	return a.catalog.Get(ctx, userID, results[n-1].ID)
}

// isBarcode reports whether the text looks like an EAN barcode rather than
// a search query.
func isBarcode(s string) bool {
	if len(s) < 8 {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// AddCustom creates a user-scoped food with manually entered nutrients.
func (a *App) AddCustom(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	brand, err := getSimpleText(a.reader, "Brand (optional)", a.out)
	if err != nil {
		return err
	}

	var n nutrition.Nutrients
	if n.EnergyKcal, err = GetFloat(a.reader, "Energy per 100 g (kcal)", 0, a.out); err != nil {
		return err
	}
	if n.Proteins, err = GetFloat(a.reader, "Protein per 100 g", 0, a.out); err != nil {
		return err
	}
	if n.Carbs, err = GetFloat(a.reader, "Carbs per 100 g", 0, a.out); err != nil {
		return err
	}
	if n.Sugars, err = GetFloat(a.reader, "of which sugars", 0, a.out); err != nil {
		return err
	}
	if n.Fat, err = GetFloat(a.reader, "Fat per 100 g", 0, a.out); err != nil {
		return err
	}
	if n.SatFat, err = GetFloat(a.reader, "of which saturated", 0, a.out); err != nil {
		return err
	}
	if n.Fiber, err = GetFloat(a.reader, "Fiber per 100 g", 0, a.out); err != nil {
		return err
	}
	if n.Salt, err = GetFloat(a.reader, "Salt per 100 g", 0, a.out); err != nil {
		return err
	}
	pieceWeight, err := GetFloat(a.reader, "Weight of one piece in g (empty if n/a)", 0, a.out)
	if err != nil {
		return err
	}

	product, err := a.catalog.CreateCustom(ctx, userID, name, brand, n, pieceWeight)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created custom food %s [%s]\n", product.Name, shortID(product.ID))
	return nil
}

// ListCustom prints the user's own foods.
func (a *App) ListCustom(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	list, err := a.catalog.ListCustom(ctx, userID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No custom foods yet, use 'custom' to add one.")
		return nil
	}
	for i, p := range list {
		a.printProductLine(i+1, &p)
	}
	return nil
}

// RemoveCustom deletes one of the user's own foods.
func (a *App) RemoveCustom(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	list, err := a.catalog.ListCustom(ctx, userID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No custom foods to delete.")
		return nil
	}
	for i, p := range list {
		a.printProductLine(i+1, &p)
	}
	n, err := GetInt(a.reader, "Pick a number", 0, a.out)
	if err != nil {
		return err
	}
	if n < 1 || n > len(list) {
		return common.ErrNotFound
	}
	if err := a.catalog.DeleteCustom(ctx, userID, list[n-1].ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// Favorite marks a product picked by barcode or search.
func (a *App) Favorite(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	product, err := a.pickProduct(ctx, userID)
	if err != nil {
		return err
	}
	if err := a.catalog.AddFavorite(ctx, userID, product.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s to favorites.\n", product.Name)
	return nil
}

// Unfavorite removes a product from the favorites list.
func (a *App) Unfavorite(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	favs, err := a.catalog.ListFavorites(ctx, userID)
	if err != nil {
		return err
	}
	if len(favs) == 0 {
		fmt.Fprintln(a.out, "No favorites yet.")
		return nil
	}
	for i, f := range favs {
		fmt.Fprintf(a.out, "%2d. %s%s\n", i+1, f.ProductName, gradeSuffix(f.NutriScore))
	}
	n, err := GetInt(a.reader, "Pick a number", 0, a.out)
	if err != nil {
		return err
	}
	if n < 1 || n > len(favs) {
		return common.ErrNotFound
	}
	return a.catalog.RemoveFavorite(ctx, userID, favs[n-1].ProductID)
}

// ListFavorites prints the favorites.
func (a *App) ListFavorites(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	favs, err := a.catalog.ListFavorites(ctx, userID)
	if err != nil {
		return err
	}
	if len(favs) == 0 {
		fmt.Fprintln(a.out, "No favorites yet.")
		return nil
	}
	for i, f := range favs {
		fmt.Fprintf(a.out, "%2d. %s%s\n", i+1, f.ProductName, gradeSuffix(f.NutriScore))
	}
	return nil
}

// History prints the recently seen products.
func (a *App) History(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	entries, err := a.catalog.History(ctx, userID, 20)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No history yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%s  %s%s  (%s)\n",
			e.LastSeenAt.Format("2006-01-02 15:04"), e.ProductName,
			gradeSuffix(e.NutriScore), e.Source)
	}
	return nil
}

// ClearHistory wipes the product history.
func (a *App) ClearHistory(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	if err := a.catalog.ClearHistory(ctx, userID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "History cleared.")
	return nil
}
