package countries

import "strings"

// RestrictTo keeps the countries whose ISO2 code is in allow, preserving
// catalog order. An empty allow list disables the restriction.
func RestrictTo(list []Country, allow []string) []Country {
	if len(allow) == 0 {
		return list
	}

	members := make(map[string]bool, len(allow))
	for _, code := range allow {
		members[strings.ToLower(code)] = true
	}

	result := make([]Country, 0, len(allow))
	for _, c := range list {
		if members[strings.ToLower(c.ISO2)] {
			result = append(result, c)
		}
	}
	return result
}

// Project returns the countries named in prefs, in prefs order. Unknown codes
// are skipped; repeated codes produce repeated entries.
func Project(list []Country, prefs []string) []Country {
	result := make([]Country, 0, len(prefs))
	for _, code := range prefs {
		if c, ok := Find(list, code); ok {
			result = append(result, c)
		}
	}
	return result
}
