package domain

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Member is a project membership record. The service is inconsistent
// about whether the user id arrives in "user" or "id", so UserID
// normalizes that at the boundary and downstream code never branches on
// which field was present.
type Member struct {
	User            int    `json:"user"`
	ID              int    `json:"id"`
	FullName        string `json:"full_name"`
	FullNameDisplay string `json:"full_name_display"`
	Username        string `json:"username"`
	Slug            string `json:"slug"`
	RoleName        string `json:"role_name,omitempty"`
}

// UserID returns the member's user identifier, preferring the "user"
// field over the membership "id".
func (m Member) UserID() int {
	if m.User != 0 {
		return m.User
	}
	return m.ID
}

// DisplayName returns the name to show for the member.
func (m Member) DisplayName() string {
	if m.FullName != "" {
		return m.FullName
	}
	return m.FullNameDisplay
}

// minIdentifierLen filters out short tokens so that e.g. "Jo" never
// fuzzy-matches "Joana".
const minIdentifierLen = 3

// Normalize lowercases, strips diacritics and drops every
// non-alphanumeric rune, so human-entered names compare loosely:
// "Marco Olivette" and "marco.olivette" both normalize to
// "marcoolivette".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		r = stripDiacritic(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripDiacritic maps accented Latin letters onto their base letter.
// Anything outside the table falls through untouched and, if still
// non-alphanumeric, is dropped by Normalize.
func stripDiacritic(r rune) rune {
	if r < unicode.MaxASCII {
		return r
	}
	switch r {
	case 'à', 'á', 'â', 'ã', 'ä', 'å':
		return 'a'
	case 'ç':
		return 'c'
	case 'è', 'é', 'ê', 'ë':
		return 'e'
	case 'ì', 'í', 'î', 'ï':
		return 'i'
	case 'ñ':
		return 'n'
	case 'ò', 'ó', 'ô', 'õ', 'ö':
		return 'o'
	case 'ù', 'ú', 'û', 'ü':
		return 'u'
	case 'ý', 'ÿ':
		return 'y'
	}
	return r
}

// identifiers collects the normalized identifier set for fuzzy matching,
// excluding tokens shorter than minIdentifierLen.
func identifiers(raw ...string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		n := Normalize(s)
		if len(n) >= minIdentifierLen {
			out = append(out, n)
		}
	}
	return out
}

// IsCurrentUser reports whether the member denotes the logged-in user.
// An exact user-id match wins; otherwise any normalized member
// identifier (full name, display name, username, slug) equal to any
// normalized user identifier counts as a match.
func IsCurrentUser(m Member, u User) bool {
	if u == (User{}) {
		return false
	}
	if id := m.UserID(); id != 0 && u.ID != 0 && id == u.ID {
		return true
	}

	memberIDs := identifiers(m.FullName, m.FullNameDisplay, m.Username, m.Slug)
	userIDs := identifiers(u.FullName, u.Username, u.Slug)

	for _, mi := range memberIDs {
		for _, ui := range userIDs {
			if mi == ui {
				return true
			}
		}
	}
	return false
}

// SortMembers returns a copy of members in display order: the current
// user first, then ascending case-insensitive collation order by
// display name, so accented names sort next to their base letter
// ("Étienne" with "E", not after "Z"). The sort is stable so equal
// names keep their incoming order.
func SortMembers(members []Member, current User) []Member {
	sorted := make([]Member, len(members))
	copy(sorted, members)

	// Collators are not safe for concurrent use, so build one per call.
	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(sorted, func(i, j int) bool {
		iIsUser := IsCurrentUser(sorted[i], current)
		jIsUser := IsCurrentUser(sorted[j], current)
		if iIsUser != jIsUser {
			return iIsUser
		}
		return coll.CompareString(sorted[i].DisplayName(), sorted[j].DisplayName()) < 0
	})
	return sorted
}

// MemberByUserID looks up a member by user id.
func MemberByUserID(members []Member, userID int) (Member, bool) {
	for _, m := range members {
		if m.UserID() == userID {
			return m, true
		}
	}
	return Member{}, false
}
