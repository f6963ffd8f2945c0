package constant

type ListingStatus string

const (
	ListingStatusInProgress ListingStatus = "en cours"
	ListingStatusSold       ListingStatus = "vendu"
	ListingStatusRented     ListingStatus = "loué"
	ListingStatusWithdrawn  ListingStatus = "retiré"
)

// DefaultListingStatus is applied when a listing is created without a status.
const DefaultListingStatus = ListingStatusInProgress

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusInProgress, ListingStatusSold, ListingStatusRented, ListingStatusWithdrawn:
		return true
	}
	return false
}

// AllowedImageExtensions lists the accepted upload extensions, lowercase with the dot.
var AllowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}
