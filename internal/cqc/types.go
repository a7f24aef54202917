// Package cqc provides the client for the Care Quality Commission public
// API (England): paginated location search, per-location detail fetch,
// bounded concurrent enrichment, radius search, and the aggregation
// queries built on top of them.
//
// CQC uses subscription-key auth and page-number pagination. Rate
// limiting is handled via a token bucket limiter.
package cqc

import "fmt"

const reportURLBase = "https://www.cqc.org.uk/location/"

// Location is the summary shape returned by the locations search
// endpoint. Ratings and bed counts only appear on the detail endpoint.
type Location struct {
	LocationID       string `json:"locationId"`
	LocationName     string `json:"locationName"`
	PostalCode       string `json:"postalCode"`
	Region           string `json:"region,omitempty"`
	OverallRating    string `json:"overallRating,omitempty"`
	OrganisationName string `json:"organisationName,omitempty"`
	LastInspection   *struct {
		Date string `json:"date"`
	} `json:"lastInspection,omitempty"`
}

// SearchResult is the locations search response envelope.
type SearchResult struct {
	Locations  []Location `json:"locations"`
	Total      int        `json:"total"`
	TotalPages int        `json:"totalPages"`
	Page       int        `json:"page"`
	PerPage    int        `json:"perPage"`
}

type ratingValue struct {
	Rating string `json:"rating"`
}

type NamedItem struct {
	Name string `json:"name"`
}

// LocationDetail is the per-location detail shape. Only the fields the
// aggregations project are decoded.
type LocationDetail struct {
	LocationID     string `json:"locationId"`
	Name           string `json:"name"`
	CurrentRatings struct {
		Overall    ratingValue `json:"overall"`
		Safe       ratingValue `json:"safe"`
		Effective  ratingValue `json:"effective"`
		Caring     ratingValue `json:"caring"`
		Responsive ratingValue `json:"responsive"`
		WellLed    ratingValue `json:"wellLed"`
	} `json:"currentRatings"`
	NumberOfBeds        int         `json:"numberOfBeds"`
	MainPhoneNumber     string      `json:"mainPhoneNumber"`
	Website             string      `json:"website"`
	OnspdLatitude       float64     `json:"onspdLatitude"`
	OnspdLongitude      float64     `json:"onspdLongitude"`
	RegistrationStatus  string      `json:"registrationStatus"`
	RegistrationDate    string      `json:"registrationDate"`
	LocalAuthority      string      `json:"localAuthority"`
	Region              string      `json:"region"`
	PostalAddressLine1  string      `json:"postalAddressLine1"`
	PostalAddressTown   string      `json:"postalAddressTownCity"`
	GacServiceTypes     []NamedItem `json:"gacServiceTypes"`
	Specialisms         []NamedItem `json:"specialisms"`
	RegulatedActivities []NamedItem `json:"regulatedActivities"`
	LastInspection      *struct {
		Date string `json:"date"`
	} `json:"lastInspection"`
}

// Enriched is the summary + detail projection the aggregation endpoints
// return for each location.
type Enriched struct {
	LocationID         string  `json:"locationId"`
	LocationName       string  `json:"locationName"`
	PostalCode         string  `json:"postalCode"`
	LocalAuthority     string  `json:"localAuthority,omitempty"`
	Region             string  `json:"region,omitempty"`
	Latitude           float64 `json:"latitude,omitempty"`
	Longitude          float64 `json:"longitude,omitempty"`
	FullAddress        string  `json:"fullAddress,omitempty"`
	Rating             string  `json:"rating,omitempty"`
	RatingSafe         string  `json:"ratingSafe,omitempty"`
	RatingEffective    string  `json:"ratingEffective,omitempty"`
	RatingCaring       string  `json:"ratingCaring,omitempty"`
	RatingResponsive   string  `json:"ratingResponsive,omitempty"`
	RatingWellLed      string  `json:"ratingWellLed,omitempty"`
	Phone              string  `json:"phone,omitempty"`
	Website            string  `json:"website,omitempty"`
	Beds               int     `json:"beds,omitempty"`
	RegistrationStatus string  `json:"registrationStatus,omitempty"`
	RegistrationDate   string  `json:"registrationDate,omitempty"`
	LastInspectionDate string  `json:"lastInspectionDate,omitempty"`
	ServiceTypes       string  `json:"serviceTypes,omitempty"`
	Specialisms        string  `json:"specialisms,omitempty"`
	ProviderName       string  `json:"providerName,omitempty"`
	Distance           float64 `json:"distance,omitempty"`
	ReportURL          string  `json:"cqcReportUrl"`
}

// ReportURL builds the public report page link for a location.
func ReportURL(locationID string) string {
	return reportURLBase + locationID
}

func ratingOr(v ratingValue, fallback string) string {
	if v.Rating == "" {
		return fallback
	}
	return v.Rating
}

func JoinNames(items []NamedItem) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it.Name
	}
	return out
}

func fullAddress(d *LocationDetail) string {
	if d.PostalAddressLine1 == "" && d.PostalAddressTown == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s", d.PostalAddressLine1, d.PostalAddressTown)
}

// enrich builds the projection from a summary row plus its detail.
func enrich(loc Location, d *LocationDetail) Enriched {
	e := Enriched{
		LocationID:         loc.LocationID,
		LocationName:       loc.LocationName,
		PostalCode:         loc.PostalCode,
		LocalAuthority:     d.LocalAuthority,
		Region:             d.Region,
		Latitude:           d.OnspdLatitude,
		Longitude:          d.OnspdLongitude,
		FullAddress:        fullAddress(d),
		Rating:             ratingOr(d.CurrentRatings.Overall, "Not rated"),
		RatingSafe:         ratingOr(d.CurrentRatings.Safe, "Not rated"),
		RatingEffective:    ratingOr(d.CurrentRatings.Effective, "Not rated"),
		RatingCaring:       ratingOr(d.CurrentRatings.Caring, "Not rated"),
		RatingResponsive:   ratingOr(d.CurrentRatings.Responsive, "Not rated"),
		RatingWellLed:      ratingOr(d.CurrentRatings.WellLed, "Not rated"),
		Phone:              d.MainPhoneNumber,
		Website:            d.Website,
		Beds:               d.NumberOfBeds,
		RegistrationStatus: d.RegistrationStatus,
		RegistrationDate:   d.RegistrationDate,
		ServiceTypes:       JoinNames(d.GacServiceTypes),
		Specialisms:        JoinNames(d.Specialisms),
		ProviderName:       d.Name,
		ReportURL:          ReportURL(loc.LocationID),
	}
	if d.LastInspection != nil {
		e.LastInspectionDate = d.LastInspection.Date
	}
	return e
}
