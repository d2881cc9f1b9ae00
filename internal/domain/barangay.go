package domain

// Barangays is the fixed list of the city's 47 barangays. Registration and
// profile updates only accept a locality from this list.
var Barangays = []string{
	"Agnas",
	"Bacolod",
	"Bangkilingan",
	"Bantayan",
	"Baranghawon",
	"Basagan",
	"Basud",
	"Bognabong",
	"Bombon",
	"Bonot",
	"Buang",
	"Buhian",
	"Cabagnan",
	"Cobo",
	"Comon",
	"Cormidal",
	"Divino Rostro",
	"Fatima",
	"Guinobat",
	"Hacienda",
	"Magapo",
	"Mariroc",
	"Matagbac",
	"Oras",
	"Oson",
	"Panal",
	"Pawa",
	"Pinagbobong",
	"Quinale Cabasan",
	"Quinastillojan",
	"Rawis",
	"Sagurong",
	"Salvacion",
	"San Antonio",
	"San Carlos",
	"San Isidro",
	"San Juan",
	"San Lorenzo",
	"San Ramon",
	"San Roque",
	"San Vicente",
	"Santo Cristo",
	"Sua-Igot",
	"Tabiguian",
	"Tagas",
	"Tayhi",
	"Visita",
}

// IsBarangay reports whether name is one of the city's barangays.
func IsBarangay(name string) bool {
	for _, b := range Barangays {
		if b == name {
			return true
		}
	}
	return false
}
