package share

import "strings"

// StateParamName is the query parameter carrying the share token.
const StateParamName = "state"

// BuildURL appends the token to a base URL as the state parameter.
// The token is already percent-encoded by Encode and is embedded as-is.
func BuildURL(base, token string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + StateParamName + "=" + token
}

// StateParam extracts the still-encoded token from a share URL or
// plain query string. The token keeps its original percent-encoding,
// which is what Decode expects. Inputs that carry no state parameter
// and are not URLs are treated as bare tokens and returned verbatim;
// an empty result means "no state".
func StateParam(raw string) string {
	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	} else if strings.Contains(raw, "://") {
		return "" // a URL without a query string carries no state
	}

	for _, pair := range strings.Split(query, "&") {
		if v, ok := strings.CutPrefix(pair, StateParamName+"="); ok {
			return v
		}
	}

	if query == raw && !strings.Contains(raw, "=") {
		return raw // bare token
	}
	return ""
}
