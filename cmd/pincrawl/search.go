package main

import (
	"fmt"
	"net/url"
)

// SearchURL builds the pin search results URL for a free-text query.
func SearchURL(query string) string {
	return fmt.Sprintf("https://www.pinterest.com/search/pins/?q=%s", url.QueryEscape(query))
}
