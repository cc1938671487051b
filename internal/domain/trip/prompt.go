package trip

import (
	"strconv"
	"strings"
)

// PromptSuffix is appended to every user prompt. It asks for strict JSON that
// follows the batch schema.
const PromptSuffix = "generate travel data according to the schema and in json format, " +
	"do not return anything in your response outside of curly braces, " +
	"generate response as per the function schema provided. Dates given, " +
	"activity preference and travelling with may influence like 50% while generating plan. " +
	"REMEMBER: TO give the response in JSON format and do not miss any field in the schema and meet the case of the attributes."

// Input carries the user's request for the adventure and itinerary batches.
// Zero values mean "not provided". Dates are integer epoch values; JSON
// decoding rejects fractional numbers.
type Input struct {
	UserPrompt          string   `json:"prompt"`
	ActivityPreferences []string `json:"activityPreferences,omitempty"`
	FromDate            *int64   `json:"fromDate,omitempty"`
	ToDate              *int64   `json:"toDate,omitempty"`
	Companion           string   `json:"companion,omitempty"`
}

// BuildPrompt renders in as
//
//	<prompt>[, from date-<from>][ to date-<to>][, travelling with-<companion>][, activity preferences-<a,b>], <suffix>
//
// Values are interpolated as-is, without escaping.
func BuildPrompt(in Input) string {
	var b strings.Builder
	b.WriteString(in.UserPrompt)

	switch {
	case in.FromDate != nil && in.ToDate != nil:
		b.WriteString(", from date-")
		b.WriteString(strconv.FormatInt(*in.FromDate, 10))
		b.WriteString(" to date-")
		b.WriteString(strconv.FormatInt(*in.ToDate, 10))
	case in.FromDate != nil:
		b.WriteString(", from date-")
		b.WriteString(strconv.FormatInt(*in.FromDate, 10))
	case in.ToDate != nil:
		b.WriteString(", to date-")
		b.WriteString(strconv.FormatInt(*in.ToDate, 10))
	}

	if in.Companion != "" {
		b.WriteString(", travelling with-")
		b.WriteString(in.Companion)
	}

	if len(in.ActivityPreferences) > 0 {
		b.WriteString(", activity preferences-")
		b.WriteString(strings.Join(in.ActivityPreferences, ","))
	}

	b.WriteString(", ")
	b.WriteString(PromptSuffix)
	return b.String()
}

// BuildPlacePrompt is the place-info variant: only the free text and the suffix.
func BuildPlacePrompt(text string) string {
	return text + ", " + PromptSuffix
}

// ComposeRequest joins the batch description and the built prompt into the
// exact text sent upstream.
func ComposeRequest(b Batch, prompt string) string {
	return b.Description + "\n\n" + prompt
}

// Int64 is a convenience for filling Input.FromDate / Input.ToDate.
func Int64(v int64) *int64 { return &v }
