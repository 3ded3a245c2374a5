package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetProfileStatsStore(t *testing.T) {
	_, err := GetProfileStatsStore()
	assert.Nil(t, err)
}

func TestRedisKeyParser(t *testing.T) {
	p := &RedisKeyParser{delimiter: "__"}
	validUserId := "valid-user-id"
	expectedKey := "viewed_profile__valid-user-id"

	invalidUserId := "invalid__user__id"

	assert.True(t, p.ValidateId(validUserId))
	assert.False(t, p.ValidateId(invalidUserId))

	k, err := p.EncodeStatKey(StatViewedProfile, validUserId)
	assert.Equal(t, expectedKey, k)
	assert.Nil(t, err)

	_, err = p.EncodeStatKey(StatViewedProfile, invalidUserId)
	assert.NotNil(t, err)

	kind, uId, err := p.DecodeStatKey(expectedKey)
	assert.Nil(t, err)
	assert.Equal(t, StatViewedProfile, kind)
	assert.Equal(t, validUserId, uId)
}

func TestProfileStatsStoreCounters(t *testing.T) {
	s, err := GetProfileStatsStore()
	assert.Nil(t, err)

	userId := "stats-user-" + RandomAlphabetString(8)

	// Never-touched counter reads as zero.
	val, err := s.GetStat(StatViewedProfile, userId)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), val)

	assert.Nil(t, s.IncrementStat(StatViewedProfile, userId))
	assert.Nil(t, s.IncrementStat(StatViewedProfile, userId))

	val, err = s.GetStat(StatViewedProfile, userId)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), val)

	// Batched bumps land on every listed user.
	other := "stats-user-" + RandomAlphabetString(8)
	assert.Nil(t, s.IncrementStatBatch(StatImpressions, []string{userId, other, userId}))

	val, err = s.GetStat(StatImpressions, userId)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), val)

	val, err = s.GetStat(StatImpressions, other)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), val)
}
