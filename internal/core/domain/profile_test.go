package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func intPtr(v int) *int { return &v }

func TestCalculateYearsInService(t *testing.T) {
	tests := []struct {
		name    string
		periods []ServicePeriod
		want    int
	}{
		{"none", nil, 0},
		{"closed", []ServicePeriod{{YearStart: 2010, YearEnd: intPtr(2016)}}, 6},
		{"ongoing", []ServicePeriod{{YearStart: 2019}}, 6},
		{"span with gap", []ServicePeriod{
			{YearStart: 2001, YearEnd: intPtr(2004)},
			{YearStart: 2013, YearEnd: intPtr(2016)},
		}, 15},
		{"overlap", []ServicePeriod{
			{YearStart: 2010, YearEnd: intPtr(2016)},
			{YearStart: 2012, YearEnd: intPtr(2014)},
		}, 6},
		{"start after current year", []ServicePeriod{{YearStart: 2030}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateYearsInService(tt.periods, 2025))
		})
	}
}

func TestBuildStatCards(t *testing.T) {
	show := ShowFlags{YearsInService: true, Projects: true, Awards: false}
	counts := ProfileCounts{ServicePeriods: 2, Projects: 0, Awards: 3}

	all := BuildStatCards(show, counts, 9, false)
	require.Len(t, all, 6)
	assert.Equal(t, "yearsInService", all[0].Key)
	assert.Equal(t, 9, all[0].Value)

	public := BuildStatCards(show, counts, 9, true)
	require.Len(t, public, 1, "only enabled cards with data are public")
	assert.Equal(t, "yearsInService", public[0].Key)
}

func TestProfileValidate(t *testing.T) {
	p := &Profile{FirstName: "Ana", LastName: "Sali", Slug: "ana-sali"}
	assert.NoError(t, p.Validate())

	p.PositionCategory = "KING"
	assert.True(t, IsValidation(p.Validate()))

	p.PositionCategory = PositionBoardMember
	p.District = "THIRD"
	assert.True(t, IsValidation(p.Validate()))

	assert.True(t, IsValidation((&Profile{FirstName: "Ana"}).Validate()))
}

func TestProfileNames(t *testing.T) {
	p := &Profile{FirstName: "Ana", MiddleName: " ", LastName: "Sali", Suffix: "Jr."}
	assert.Equal(t, "Ana Sali Jr.", p.FullName())

	p.PositionCategory = PositionViceGovernor
	assert.Equal(t, "Vice Governor", p.PositionTitle())
	p.CurrentPosition = "Acting Governor"
	assert.Equal(t, "Acting Governor", p.PositionTitle())
}

func TestNewsDerive(t *testing.T) {
	n := &News{Title: "Bongao Port Opens!", Content: "<p>The <b>new</b> port</p>"}
	n.Derive()
	assert.Equal(t, "bongao-port-opens", n.Slug)
	assert.Equal(t, "The new port", n.Excerpt)

	n = &News{Title: "x", Slug: "Custom Slug", Excerpt: "kept", Content: "body"}
	n.Derive()
	assert.Equal(t, "custom-slug", n.Slug)
	assert.Equal(t, "kept", n.Excerpt)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", MinBcryptCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword("s3cret", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestHashPassword_RaisesLowCost(t *testing.T) {
	for _, requested := range []int{0, 4, 9} {
		hash, err := HashPassword("s3cret", requested)
		require.NoError(t, err)

		stored, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, MinBcryptCost, stored, "requested cost %d", requested)
	}
}

func TestDelegatedTokenUsable(t *testing.T) {
	tok := &DelegatedToken{ExpiresAt: timeAt(10)}
	assert.True(t, tok.Usable(timeAt(5)))
	assert.False(t, tok.Usable(timeAt(10)))
	tok.Used = true
	assert.False(t, tok.Usable(timeAt(5)))

	secret, err := NewTokenSecret(DelegatedTokenBytes)
	require.NoError(t, err)
	assert.Len(t, secret, DelegatedTokenBytes*2)
	assert.Len(t, HashToken(secret), 64)
	assert.NotEqual(t, secret, HashToken(secret))
}
