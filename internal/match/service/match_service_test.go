/*
 * Copyright (c) 2025, FaithMatch (https://faithmatch.dev).
 *
 * FaithMatch licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import (
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	model "github.com/faithmatch/match-data-service/internal/match/model"
	profileModel "github.com/faithmatch/match-data-service/internal/profile/model"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeProfileStore struct {
	profiles   map[string]*profileModel.Profile
	staleOnce  map[string]*profileModel.Profile
	candidates []profileModel.Profile
	err        error
}

func (f *fakeProfileStore) InsertProfile(profile profileModel.Profile) error {
	f.profiles[profile.UserId] = &profile
	return nil
}

func (f *fakeProfileStore) GetProfileByUserId(userId string) (*profileModel.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	// A registered stale snapshot is served exactly once, simulating a
	// read that raced a concurrent write.
	if stale, ok := f.staleOnce[userId]; ok {
		delete(f.staleOnce, userId)
		return stale, nil
	}
	return f.profiles[userId], nil
}

func (f *fakeProfileStore) GetProfileByUsername(username string) (*profileModel.Profile, error) {
	for _, p := range f.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileStore) UpdateProfileFields(userId string, fields bson.M) error {
	return nil
}

func (f *fakeProfileStore) IncrementProfileViews(userId string) error { return nil }

func (f *fakeProfileStore) UpdateLastActive(userId string) error { return nil }

func (f *fakeProfileStore) FindCandidates(filter bson.M, limit, offset int64) ([]profileModel.Profile, error) {
	return f.candidates, nil
}

type fakeMatchStore struct {
	likes    map[string][]string
	matches  map[string]*model.Match
	created  []model.Match
	likeErr  error
	matchErr error
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{
		likes:   make(map[string][]string),
		matches: make(map[string]*model.Match),
	}
}

func (f *fakeMatchStore) AddLike(likerId, likedId string) error {
	if f.likeErr != nil {
		return f.likeErr
	}
	f.likes[likerId] = append(f.likes[likerId], likedId)
	return nil
}

func (f *fakeMatchStore) GetMatchByPair(user1, user2 string) (*model.Match, error) {
	first, second := model.OrderPair(user1, user2)
	return f.matches[first+":"+second], nil
}

func (f *fakeMatchStore) CreateMutualMatch(match model.Match) error {
	if f.matchErr != nil {
		return f.matchErr
	}
	f.created = append(f.created, match)
	f.matches[match.User1+":"+match.User2] = &match
	return nil
}

func (f *fakeMatchStore) GetMatchesForUser(userId string) ([]model.Match, error) {
	var result []model.Match
	for _, m := range f.matches {
		if m.User1 == userId || m.User2 == userId {
			result = append(result, *m)
		}
	}
	return result, nil
}

type fakeLock struct {
	acquireResults []bool
	acquireErr     error
	acquireCalls   int
	releaseCalls   int
}

func (f *fakeLock) Acquire(key string, ttl time.Duration) (bool, error) {
	f.acquireCalls++
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if len(f.acquireResults) == 0 {
		return true, nil
	}
	result := f.acquireResults[0]
	if len(f.acquireResults) > 1 {
		f.acquireResults = f.acquireResults[1:]
	}
	return result, nil
}

func (f *fakeLock) Release(key string) error {
	f.releaseCalls++
	return nil
}

func profileFixture(userId string, likes ...string) *profileModel.Profile {
	return &profileModel.Profile{
		UserId:   userId,
		Username: userId,
		Gender:   "female",
		Likes:    likes,
	}
}

func newTestService(profiles *fakeProfileStore, matches *fakeMatchStore, lock *fakeLock) *MatchService {
	return NewMatchService(matches, profiles, lock)
}

func clientErrorCode(t *testing.T, err error) string {
	t.Helper()
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	return clientErr.Code
}

// ---------------------------------------------------------------------------
// LikeUser
// ---------------------------------------------------------------------------

func TestLikeUser_SelfLikeRejected(t *testing.T) {
	svc := newTestService(&fakeProfileStore{profiles: map[string]*profileModel.Profile{}},
		newFakeMatchStore(), &fakeLock{})

	_, err := svc.LikeUser("alice", "alice")
	require.Error(t, err)

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestLikeUser_UnknownProfiles(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*profileModel.Profile{
		"alice": profileFixture("alice"),
	}}
	svc := newTestService(profiles, newFakeMatchStore(), &fakeLock{})

	_, err := svc.LikeUser("ghost", "alice")
	assert.Equal(t, errors2.PROFILE_NOT_FOUND.Code, clientErrorCode(t, err))

	_, err = svc.LikeUser("alice", "ghost")
	assert.Equal(t, errors2.PROFILE_NOT_FOUND.Code, clientErrorCode(t, err))
}

func TestLikeUser_DuplicateLikeRejected(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*profileModel.Profile{
		"alice": profileFixture("alice", "bob"),
		"bob":   profileFixture("bob"),
	}}
	svc := newTestService(profiles, newFakeMatchStore(), &fakeLock{})

	_, err := svc.LikeUser("alice", "bob")
	assert.Equal(t, errors2.ALREADY_LIKED.Code, clientErrorCode(t, err))
}

func TestLikeUser_ConcurrentDuplicateCaughtUnderLock(t *testing.T) {
	// The first read races a concurrent like for the same pair: it sees
	// alice before her like of bob landed. The re-read under the pair
	// lock must still reject the duplicate, or the like write (and the
	// liked user's counter) would run twice for one logical like.
	profiles := &fakeProfileStore{
		profiles: map[string]*profileModel.Profile{
			"alice": profileFixture("alice", "bob"),
			"bob":   profileFixture("bob"),
		},
		staleOnce: map[string]*profileModel.Profile{
			"alice": profileFixture("alice"),
		},
	}
	matches := newFakeMatchStore()
	lock := &fakeLock{}
	svc := newTestService(profiles, matches, lock)

	_, err := svc.LikeUser("alice", "bob")
	assert.Equal(t, errors2.ALREADY_LIKED.Code, clientErrorCode(t, err))
	assert.Empty(t, matches.likes["alice"], "the like must not be recorded a second time")
	assert.Equal(t, 1, lock.releaseCalls, "pair lock must be released")
}

func TestLikeUser_NonReciprocalLike(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*profileModel.Profile{
		"alice": profileFixture("alice"),
		"bob":   profileFixture("bob"),
	}}
	matches := newFakeMatchStore()
	lock := &fakeLock{}
	svc := newTestService(profiles, matches, lock)

	result, err := svc.LikeUser("alice", "bob")
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, result.MatchId)
	assert.Equal(t, []string{"bob"}, matches.likes["alice"])
	assert.Empty(t, matches.created)
	assert.Equal(t, 1, lock.releaseCalls, "pair lock must be released")
}

func TestLikeUser_ReciprocalLikeCreatesMatch(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*profileModel.Profile{
		"bob":   profileFixture("bob"),
		"alice": profileFixture("alice", "bob"),
	}}
	matches := newFakeMatchStore()
	lock := &fakeLock{}
	svc := newTestService(profiles, matches, lock)

	result, err := svc.LikeUser("bob", "alice")
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.NotEmpty(t, result.MatchId)

	require.Len(t, matches.created, 1)
	created := matches.created[0]
	assert.Equal(t, "alice", created.User1, "pair must be stored in lexical order")
	assert.Equal(t, "bob", created.User2)
	assert.Equal(t, model.MatchedByMutualLike, created.MatchedBy)
	assert.Equal(t, model.MatchStatusActive, created.Status)
	assert.Equal(t, 100, created.CompatibilityScore, "no preferences set, so every criterion is met")
	assert.True(t, created.PreferencesMet.Religion)
	assert.Zero(t, created.MessageCount, "a fresh match has no messages")
	assert.Equal(t, 1, lock.releaseCalls)
}

func TestLikeUser_ExistingMatchIsReturnedOnce(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*profileModel.Profile{
		"bob":   profileFixture("bob"),
		"alice": profileFixture("alice", "bob"),
	}}
	matches := newFakeMatchStore()
	matches.matches["alice:bob"] = &model.Match{MatchId: "existing", User1: "alice", User2: "bob"}
	svc := newTestService(profiles, matches, &fakeLock{})

	result, err := svc.LikeUser("bob", "alice")
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "existing", result.MatchId)
	assert.Empty(t, matches.created, "no second match document for the same pair")
}

func TestLikeUser_LockContentionRejected(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*profileModel.Profile{
		"alice": profileFixture("alice"),
		"bob":   profileFixture("bob"),
	}}
	lock := &fakeLock{acquireResults: []bool{false}}
	svc := newTestService(profiles, newFakeMatchStore(), lock)

	_, err := svc.LikeUser("alice", "bob")
	assert.Equal(t, errors2.PAIR_LOCK_BUSY.Code, clientErrorCode(t, err))
	assert.Greater(t, lock.acquireCalls, 1, "acquisition should be retried")
	assert.Equal(t, 0, lock.releaseCalls)
}

func TestLikeUser_LockFailureIsServerError(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*profileModel.Profile{
		"alice": profileFixture("alice"),
		"bob":   profileFixture("bob"),
	}}
	lock := &fakeLock{acquireErr: errors.New("lock store down")}
	svc := newTestService(profiles, newFakeMatchStore(), lock)

	_, err := svc.LikeUser("alice", "bob")
	require.Error(t, err)

	var serverErr *errors2.ServerError
	assert.ErrorAs(t, err, &serverErr)
}

// ---------------------------------------------------------------------------
// FindMatches
// ---------------------------------------------------------------------------

func TestFindMatches_UnknownSeeker(t *testing.T) {
	svc := newTestService(&fakeProfileStore{profiles: map[string]*profileModel.Profile{}},
		newFakeMatchStore(), &fakeLock{})

	_, err := svc.FindMatches("ghost", 10, 0)
	assert.Equal(t, errors2.PROFILE_NOT_FOUND.Code, clientErrorCode(t, err))
}

func TestFindMatches_SortsByCompatibility(t *testing.T) {
	seeker := profileFixture("alice")
	seeker.Religion = "christian"
	seeker.MatchPreferences = profileModel.MatchPreferences{
		Religion:      "same",
		WantsChildren: "yes",
	}

	weak := *profileFixture("bob")
	weak.Religion = "other"

	strong := *profileFixture("carl")
	strong.Religion = "christian"
	strong.WantsChildren = boolPtr(true)

	profiles := &fakeProfileStore{
		profiles:   map[string]*profileModel.Profile{"alice": seeker},
		candidates: []profileModel.Profile{weak, strong},
	}
	svc := newTestService(profiles, newFakeMatchStore(), &fakeLock{})

	results, err := svc.FindMatches("alice", 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "carl", results[0].Profile.UserId)
	assert.Greater(t, results[0].CompatibilityScore, results[1].CompatibilityScore)
	assert.True(t, results[0].MatchesPreferences, "every criterion met")
	assert.False(t, results[1].MatchesPreferences, "religion and children criteria unmet")
}

// ---------------------------------------------------------------------------
// GetMatches
// ---------------------------------------------------------------------------

func TestGetMatches_JoinsCounterpartProfiles(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*profileModel.Profile{
		"alice": profileFixture("alice"),
		"bob":   profileFixture("bob"),
	}}
	matches := newFakeMatchStore()
	matches.matches["alice:bob"] = &model.Match{
		MatchId: "m1", User1: "alice", User2: "bob", CompatibilityScore: 80,
	}
	svc := newTestService(profiles, matches, &fakeLock{})

	details, err := svc.GetMatches("alice")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "m1", details[0].MatchId)
	assert.Equal(t, 80, details[0].CompatibilityScore)
	require.NotNil(t, details[0].Profile)
	assert.Equal(t, "bob", details[0].Profile.UserId)
}

// ---------------------------------------------------------------------------
// candidateFilter
// ---------------------------------------------------------------------------

func TestCandidateFilter_ExcludesSelf(t *testing.T) {
	seeker := profileFixture("alice")
	filter := candidateFilter(seeker)

	assert.Equal(t, bson.M{"$ne": "alice"}, filter["user_id"])
}

func TestCandidateFilter_GenderBothMatchesEither(t *testing.T) {
	seeker := profileFixture("alice")
	seeker.MatchPreferences.Gender = "both"

	filter := candidateFilter(seeker)
	assert.Equal(t, bson.M{"$in": []string{"male", "female"}}, filter["gender"])
}

func TestCandidateFilter_SpecificGender(t *testing.T) {
	seeker := profileFixture("alice")
	seeker.MatchPreferences.Gender = "male"

	filter := candidateFilter(seeker)
	assert.Equal(t, "male", filter["gender"])
}

func TestCandidateFilter_AgeRangeBecomesBirthDateWindow(t *testing.T) {
	seeker := profileFixture("alice")
	seeker.MatchPreferences.AgeRange = profileModel.AgeRange{Min: 25, Max: 35}

	filter := candidateFilter(seeker)
	window, ok := filter["date_of_birth"].(bson.M)
	require.True(t, ok)

	earliest, ok := window["$gt"].(time.Time)
	require.True(t, ok)
	latest, ok := window["$lte"].(time.Time)
	require.True(t, ok)
	assert.True(t, earliest.Before(latest))

	// A 30 year old falls inside the window, a 40 year old does not.
	inRange := time.Now().AddDate(-30, 0, 0)
	tooOld := time.Now().AddDate(-40, 0, 0)
	assert.True(t, inRange.After(earliest) && !inRange.After(latest))
	assert.False(t, tooOld.After(earliest))
}

func TestCandidateFilter_SameReligion(t *testing.T) {
	seeker := profileFixture("alice")
	seeker.Religion = "christian"
	seeker.MatchPreferences.Religion = "same"

	filter := candidateFilter(seeker)
	assert.Equal(t, "christian", filter["religion"])
}

func TestCandidateFilter_AnyReligionAddsNoFilter(t *testing.T) {
	seeker := profileFixture("alice")
	seeker.MatchPreferences.Religion = "any"

	filter := candidateFilter(seeker)
	_, present := filter["religion"]
	assert.False(t, present)
}

func TestCandidateFilter_WantsChildren(t *testing.T) {
	seeker := profileFixture("alice")
	seeker.MatchPreferences.WantsChildren = "yes"
	assert.Equal(t, true, candidateFilter(seeker)["wants_children"])

	seeker.MatchPreferences.WantsChildren = "no"
	assert.Equal(t, false, candidateFilter(seeker)["wants_children"])

	seeker.MatchPreferences.WantsChildren = "either"
	_, present := candidateFilter(seeker)["wants_children"]
	assert.False(t, present)
}

// ---------------------------------------------------------------------------
// pairLockKey
// ---------------------------------------------------------------------------

func TestPairLockKey_OrderIndependent(t *testing.T) {
	assert.Equal(t, pairLockKey("alice", "bob"), pairLockKey("bob", "alice"))
}
