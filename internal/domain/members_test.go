package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Marco", "marco"},
		{"dots and spaces dropped", "marco.olivette", "marcoolivette"},
		{"full name", "Marco Olivette", "marcoolivette"},
		{"diacritics stripped", "José Conceição", "joseconceicao"},
		{"digits kept", "user42", "user42"},
		{"empty", "", ""},
		{"only punctuation", "...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestIsCurrentUser_ExactIDMatch(t *testing.T) {
	user := User{ID: 42, Username: "someone"}

	assert.True(t, IsCurrentUser(Member{User: 42, FullName: "Completely Different"}, user))
	assert.True(t, IsCurrentUser(Member{ID: 42}, user))
	assert.False(t, IsCurrentUser(Member{User: 43}, user))
}

func TestIsCurrentUser_FuzzyNameMatch(t *testing.T) {
	// "Marco Olivette" matches username "marco.olivette" by normalized
	// equality.
	user := User{ID: 1, Username: "marco.olivette"}
	member := Member{User: 99, FullName: "Marco Olivette"}

	assert.True(t, IsCurrentUser(member, user))
}

func TestIsCurrentUser_ShortTokensNeverMatch(t *testing.T) {
	// "Jo" is below the 3-character minimum, so it must not match
	// "Joana" (or anything else) by name.
	user := User{ID: 1, FullName: "Joana"}
	member := Member{User: 2, FullName: "Jo"}

	assert.False(t, IsCurrentUser(member, user))
}

func TestIsCurrentUser_NoUser(t *testing.T) {
	assert.False(t, IsCurrentUser(Member{User: 1, FullName: "Anyone"}, User{}))
}

func TestIsCurrentUser_DiacriticsAndSlug(t *testing.T) {
	user := User{ID: 7, Slug: "jose-conceicao"}
	member := Member{User: 12, FullNameDisplay: "José Conceição"}

	assert.True(t, IsCurrentUser(member, user))
}

func TestSortMembers_CurrentUserFirstThenAlphabetical(t *testing.T) {
	user := User{ID: 3, Username: "carla"}
	members := []Member{
		{User: 1, FullName: "Zoe Park"},
		{User: 2, FullName: "Ana Lima"},
		{User: 3, FullName: "Carla Reis"},
		{User: 4, FullName: "bruno dias"},
	}

	sorted := SortMembers(members, user)

	got := make([]string, len(sorted))
	for i, m := range sorted {
		got[i] = m.FullName
	}
	assert.Equal(t, []string{"Carla Reis", "Ana Lima", "bruno dias", "Zoe Park"}, got)

	// Input order untouched.
	assert.Equal(t, "Zoe Park", members[0].FullName)
}

func TestSortMembers_CollatesAccentedNames(t *testing.T) {
	members := []Member{
		{User: 1, FullName: "Zoe Miller"},
		{User: 2, FullName: "Étienne Dupont"},
		{User: 3, FullName: "Anna Blake"},
	}

	sorted := SortMembers(members, User{})

	got := make([]string, len(sorted))
	for i, m := range sorted {
		got[i] = m.FullName
	}
	// "É" collates with "E", not after "Z".
	assert.Equal(t, []string{"Anna Blake", "Étienne Dupont", "Zoe Miller"}, got)
}

func TestSortMembers_FallsBackToDisplayName(t *testing.T) {
	members := []Member{
		{User: 1, FullNameDisplay: "Beta"},
		{User: 2, FullName: "Alpha"},
	}

	sorted := SortMembers(members, User{})

	assert.Equal(t, "Alpha", sorted[0].DisplayName())
	assert.Equal(t, "Beta", sorted[1].DisplayName())
}

func TestMember_UserID(t *testing.T) {
	assert.Equal(t, 5, Member{User: 5, ID: 9}.UserID())
	assert.Equal(t, 9, Member{ID: 9}.UserID())
}

func TestMemberByUserID(t *testing.T) {
	members := []Member{{User: 1, FullName: "A"}, {User: 2, FullName: "B"}}

	m, ok := MemberByUserID(members, 2)
	assert.True(t, ok)
	assert.Equal(t, "B", m.FullName)

	_, ok = MemberByUserID(members, 3)
	assert.False(t, ok)
}
