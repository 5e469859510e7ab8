package gallery

// Manifest is the root of gallery.json.
type Manifest struct {
	Brand       string     `json:"brand"`
	ServiceArea string     `json:"service_area"`
	Categories  []Category `json:"categories"`
}

// Category groups photos under a display name.
type Category struct {
	Name   string  `json:"name"`
	Slug   string  `json:"slug"`
	Photos []Photo `json:"photos"`
}

// Photo is one manifest entry. Src and Thumb are web paths relative to the
// manifest's directory.
type Photo struct {
	Src      string `json:"src"`
	Thumb    string `json:"thumb"`
	Alt      string `json:"alt"`
	Category string `json:"category"`
}
