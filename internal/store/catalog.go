package store

import (
	"tokoadmin/internal/models"
)

// CatalogAPI is the subset of the REST client used to browse reference data.
type CatalogAPI interface {
	ListProducts(page int) (*models.Page[models.Product], error)
	ListWarehouses() ([]models.Warehouse, error)
	AssetURL(path string) string
}

// Catalog serves the product and location lists the restock forms pick from.
type Catalog struct {
	api CatalogAPI
}

// NewCatalog creates a Catalog on top of api.
func NewCatalog(api CatalogAPI) *Catalog {
	return &Catalog{api: api}
}

// Products returns one page of products with image paths resolved against
// the asset storage URL.
func (c *Catalog) Products(page int) (*models.Page[models.Product], error) {
	if page < 1 {
		page = 1
	}
	res, err := c.api.ListProducts(page)
	if err != nil {
		return nil, err
	}
	out := *res
	out.Data = make([]models.Product, len(res.Data))
	for i, p := range res.Data {
		p.Image = c.api.AssetURL(p.Image)
		out.Data[i] = p
	}
	return &out, nil
}

// Outlets returns the locations of kind outlet, the valid targets of a restock request.
func (c *Catalog) Outlets() ([]models.Warehouse, error) {
	all, err := c.api.ListWarehouses()
	if err != nil {
		return nil, err
	}
	outlets := make([]models.Warehouse, 0, len(all))
	for _, w := range all {
		if w.Kind == models.KindOutlet {
			outlets = append(outlets, w)
		}
	}
	return outlets, nil
}
