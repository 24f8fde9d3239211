package model

const (
	PartnerActive   = "active"
	PartnerInactive = "inactive"
)

// Customer は得意先です。
type Customer struct {
	ID                  ID              `json:"id"`
	OrgID               ID              `json:"orgId"`
	CustomerID          string          `json:"customerId"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	Address             string          `json:"address"`
	Status              string          `json:"status"`
	GstNo               string          `json:"gstNo"`
	DateOfJoining       string          `json:"dateOfJoining"`
	Orders              []CustomerOrder `json:"orders"`
	SatisfactionLevel   []int           `json:"satisfactionLevel"`
	PreferredCategories []string        `json:"preferredCategories"`
}

// Vendor は仕入先です。
type Vendor struct {
	ID                   ID            `json:"id"`
	OrgID                ID            `json:"orgId"`
	VendorID             string        `json:"vendorId"`
	Name                 string        `json:"name"`
	Email                string        `json:"email"`
	Phone                string        `json:"phone"`
	Status               string        `json:"status"`
	GstNo                string        `json:"gstNo"`
	Address              string        `json:"address"`
	Specialities         []string      `json:"specialities"`
	TotalRestocks        int           `json:"totalRestocks"`
	TotalValue           float64       `json:"totalValue"`
	ReplenishmentHistory []RestockItem `json:"replenishmentHistory"`
	Rating               []int         `json:"rating"`
	OnTimeDelivery       []int         `json:"onTimeDelivery"`
	ResponseTime         []int         `json:"responseTime"`
}

// Organization は組織情報です。
type Organization struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	MobileNo string `json:"mobileNo"`
	Email    string `json:"email"`
	GstNo    string `json:"gstNo"`
	Address  string `json:"address"`
}

// CustomerInput is the create/update payload for customers.
type CustomerInput struct {
	Name                string          `json:"name,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Email               string          `json:"email,omitempty"`
	Address             string          `json:"address,omitempty"`
	Status              string          `json:"status,omitempty"`
	PreferredCategories []string        `json:"preferredCategories,omitempty"`
	GstNo               string          `json:"gstNo,omitempty"`
	DateOfJoining       string          `json:"dateOfJoining,omitempty"`
	Orders              []CustomerOrder `json:"orders,omitempty"`
	SatisfactionLevel   []int           `json:"satisfactionLevel,omitempty"`
}

// VendorInput is the create/update payload for vendors.
type VendorInput struct {
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Status       string   `json:"status,omitempty"`
	GstNo        string   `json:"gstNo,omitempty"`
	Address      string   `json:"address,omitempty"`
	Specialities []string `json:"specialities,omitempty"`
}
