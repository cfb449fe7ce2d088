package domain

// Area is one province, regency or district. ParentID is empty for provinces.
type Area struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

type Religion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MainReligions is what the identity forms offer.
var MainReligions = []string{"Islam", "Katolik", "Kristen", "Hindu", "Budha"}

var (
	Nationalities  = []string{"WNI Asli", "WNI Keturunan", "WNA"}
	Genders        = []string{"Pria", "Wanita"}
	MaritalStatus  = []string{"Belum menikah", "Menikah", "Cerai"}
	ForeignCitizen = "WNA"
)
