package domain

// Service is one entry of the fixed service catalog. The catalog is seeded
// once at initialization (IDs 1..4) and treated as immutable reference data.
type Service struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Fixed catalog IDs. These match the seeded rows in the services table and
// must never be renumbered.
const (
	ServiceHousekeeping = 1
	ServiceElectrical   = 2
	ServicePlumbing     = 3
	ServiceCarpentry    = 4
)

// ServiceCatalog lists the four service categories offered on the platform.
var ServiceCatalog = []Service{
	{ID: ServiceHousekeeping, Name: "Housekeeping"},
	{ID: ServiceElectrical, Name: "Electrical Services"},
	{ID: ServicePlumbing, Name: "Plumbing"},
	{ID: ServiceCarpentry, Name: "Carpentry"},
}

// ValidServiceID reports whether id refers to a catalog entry.
func ValidServiceID(id int) bool {
	return id >= ServiceHousekeeping && id <= ServiceCarpentry
}
