package market

type ItemWithInterest struct {
	Item          Item
	InterestCount int
}

// Gallery is the tagged result of a gallery query. NoListings marks a
// catalog with zero items at all, which callers render differently from a
// search that matched nothing.
type Gallery struct {
	NoListings bool
	Items      []ItemWithInterest
}
