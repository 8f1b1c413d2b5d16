package models

// SiteContentID is the key of the single site content record
const SiteContentID = "main"

type Hero struct {
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
}

type Philosophy struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type Social struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Pinterest string `json:"pinterest"`
}

// SiteContent is the editable copy shown on the storefront. It is always replaced wholesale.
type SiteContent struct {
	Hero       Hero       `json:"hero"`
	Philosophy Philosophy `json:"philosophy"`
	Social     Social     `json:"social"`
}
