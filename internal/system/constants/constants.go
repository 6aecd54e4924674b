package constants

const ApiBasePath = "/api/v1"
const OptionsApiPath = "options"
const ProfileApiPath = "profiles"
const MatchesApiPath = "matches"

type contextKey string

const UserContextKey contextKey = "user"

// Option categories recognized by the catalog. Values outside this set
// are rejected on create and update.
var AllowedOptionCategories = map[string]bool{
	"gender":              true,
	"religion":            true,
	"servingAs":           true,
	"relationshipStatus":  true,
	"lookingFor":          true,
	"haveChildren":        true,
	"education":           true,
	"income":              true,
	"matchGender":         true,
	"matchReligion":       true,
	"matchEducationLevel": true,
	"matchWantsChildren":  true,
	"verificationBadge":   true,
}

// ProfileFieldOptionCategory maps enumerated profile fields to the option
// category that constrains them. Keys are the wire names of the fields.
var ProfileFieldOptionCategory = map[string]string{
	"gender":              "gender",
	"religion":            "religion",
	"serving_as":          "servingAs",
	"relationship_status": "relationshipStatus",
	"looking_for":         "lookingFor",
	"have_children":       "haveChildren",
	"education":           "education",
	"income":              "income",
}

// PreferenceFieldOptionCategory maps match preference fields to the option
// category that constrains them.
var PreferenceFieldOptionCategory = map[string]string{
	"gender":          "matchGender",
	"religion":        "matchReligion",
	"education_level": "matchEducationLevel",
	"wants_children":  "matchWantsChildren",
}

// AllowedFieldsForProfileUpdate lists the profile fields a user may set
// through the update operation. Anything else in the payload is ignored.
var AllowedFieldsForProfileUpdate = map[string]bool{
	"username":            true,
	"profile_picture":     true,
	"bio":                 true,
	"date_of_birth":       true,
	"gender":              true,
	"country_of_origin":   true,
	"current_location":    true,
	"home_language":       true,
	"religion":            true,
	"serving_as":          true,
	"relationship_status": true,
	"looking_for":         true,
	"have_children":       true,
	"wants_children":      true,
	"education":           true,
	"occupation":          true,
	"income":              true,
	"height":              true,
	"interests":           true,
	"photos":              true,
	"match_preferences":   true,
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Match preference values with special filter semantics.
const (
	MatchGenderBoth           = "both"
	MatchReligionSame         = "same"
	MatchReligionAny          = "any"
	WantsChildrenYes          = "yes"
	WantsChildrenNo           = "no"
	WantsChildrenEither       = "either"
	WantsChildrenNotSpecified = "not-specified"
)

// Document store collections.
const (
	ProfileCollection = "profiles"
	MatchCollection   = "matches"
)

// Default preference bounds applied when a profile is created without
// explicit preferences.
const (
	DefaultAgeRangeMin     = 21
	DefaultAgeRangeMax     = 50
	DefaultLocationRangeKm = 100
)

// Seeded profile field defaults.
const (
	DefaultRelationshipStatus = "single"
	DefaultLookingFor         = "not-sure"
	DefaultHaveChildren       = "no"
)

// Pair lock retry policy for the like operation.
const (
	MaxLockRetryAttempts = 5
	LockRetryIntervalMs  = 100
)
