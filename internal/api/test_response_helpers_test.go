package api

import (
	"net/http"
	"testing"
)

type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Location []string `json:"location"`
		Message  string   `json:"message"`
	} `json:"errors"`
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, response testResponse) errorBody {
	t.Helper()

	payload := errorBody{}
	response.decode(t, &payload)
	return payload
}
