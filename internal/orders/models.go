package orders

import "time"

// Customer as returned by the back-office customer directory.
type Customer struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	TotalOrders   int    `json:"totalOrders,omitempty"`
	LastOrderDate string `json:"lastOrderDate,omitempty"`
}

// Product as returned by the catalog paged search. Prices are whole VND.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"productName"`
	Price         int64    `json:"productPrice"`
	DiscountPrice int64    `json:"productDiscountPrice,omitempty"`
	StockQuantity int      `json:"stockQuantity,omitempty"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
}

type ProductPage struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"totalCount"`
	PageNumber int       `json:"pageNumber"`
	PageSize   int       `json:"pageSize"`
}

// CartItem is one line of the draft order. DiscountedUnitPrice falls back to
// UnitPrice when the product carries no discount.
type CartItem struct {
	ProductID           string `json:"productId"`
	ProductName         string `json:"productName"`
	UnitPrice           int64  `json:"price"`
	DiscountedUnitPrice int64  `json:"discountedPrice"`
	Quantity            int    `json:"quantity"`
	ImageURL            string `json:"imageUrl,omitempty"`
}

type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderCreateRequest struct {
	CustomerID      string           `json:"customerId"`
	PhoneNumber     string           `json:"phoneNumber"`
	ShippingAddress string           `json:"shippingAddress"`
	Note            string           `json:"note,omitempty"`
	OrderItems      []OrderItemInput `json:"orderItems"`
}

type OrderCreateResponse struct {
	ID                   string        `json:"id"`
	OrderNumber          string        `json:"orderNumber"`
	TotalAmount          int64         `json:"totalAmount"`
	OrderStatus          Status        `json:"orderStatus"`
	ShippingAddress      string        `json:"shippingAddress"`
	ShippingCity         string        `json:"shippingCity,omitempty"`
	ShippingCountry      string        `json:"shippingCountry,omitempty"`
	PaymentMethod        string        `json:"paymentMethod"`
	PaymentTransactionID string        `json:"paymentTransactionId"`
	Notes                string        `json:"notes,omitempty"`
	CustomerID           string        `json:"customerId"`
	CustomerName         string        `json:"customerName"`
	CreatedAt            time.Time     `json:"createdAt"`
	OrderDetails         []OrderDetail `json:"orderDetails"`
}

type OrderDetail struct {
	ID              string `json:"id"`
	Quantity        int    `json:"quantity"`
	UnitPrice       int64  `json:"unitPrice"`
	Subtotal        int64  `json:"subtotal"`
	Discount        int64  `json:"discount"`
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	ProductImageURL string `json:"productImageUrl,omitempty"`
}
