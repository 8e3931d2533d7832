package utils

import (
	"fmt"
	"net/url"
	"os"
)

// MapsEmbedURL builds the URL the frontend drops into its map iframe.
// With GOOGLE_MAPS_API_KEY set the official embed API is used, otherwise the
// keyless maps output. Geocoded coordinates win over the address.
func MapsEmbedURL(address string, lat, lng *float64) string {
	query := address
	if lat != nil && lng != nil {
		query = fmt.Sprintf("%f,%f", *lat, *lng)
	}

	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		return fmt.Sprintf("https://www.google.com/maps/embed/v1/place?key=%s&q=%s", key, url.QueryEscape(query))
	}
	return fmt.Sprintf("https://maps.google.com/maps?q=%s&output=embed", url.QueryEscape(query))
}
