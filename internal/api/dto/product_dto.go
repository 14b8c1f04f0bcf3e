package dto

// ProductsResponse GET /api/products
type ProductsResponse struct {
	Products []ProductItem `json:"products"`
}

// ProductItem 商品
type ProductItem struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image *string `json:"image"`
	Tags  string  `json:"tags"`
}
