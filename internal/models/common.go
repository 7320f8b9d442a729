// server/internal/models/common.go
package models

// Hubs is the fixed set of regional operating locations. Assets and users
// must always reference one of these.
var Hubs = []string{
	"Tshwane",
	"Cape Town",
	"Durban",
	"Polokwane",
	"Kimberley",
}

// IsValidHub reports whether name belongs to the fixed hub set.
func IsValidHub(name string) bool {
	for _, h := range Hubs {
		if h == name {
			return true
		}
	}
	return false
}

// ContactInfo is the primary contact attached to a location.
type ContactInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}
