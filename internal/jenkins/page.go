package jenkins

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// errorSelectors match the elements Jenkins uses for form validation messages
const errorSelectors = ".error, .alert-danger, .validation-error-area"

// signupFormAction is the action of the form Jenkins re-renders when a signup fails
const signupFormAction = "createAccountByAdmin"

// inspectSignupPage reports whether a 200 page returned by createAccountByAdmin
// is really a failed signup. The returned message is the first error text
// found on the page.
func inspectSignupPage(body []byte) (string, bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}

	var message string
	doc.Find(errorSelectors).EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return true
		}
		message = text
		return false
	})
	if message != "" {
		return message, true
	}

	formReturned := false
	doc.Find("form").EachWithBreak(func(i int, s *goquery.Selection) bool {
		action, _ := s.Attr("action")
		if strings.HasSuffix(strings.TrimRight(action, "/"), signupFormAction) {
			formReturned = true
			return false
		}
		return true
	})
	if formReturned {
		return "the signup form was returned without creating the account", true
	}

	return "", false
}
