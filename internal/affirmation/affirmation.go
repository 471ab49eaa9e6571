// Package affirmation builds the daily end-of-day message. The output is a
// pure function of the date key, so every caller sees the same message for
// the whole day.
package affirmation

import (
	"strings"
	"time"
	"unicode/utf16"
)

// DateKeyLayout renders a day the way the message endpoint reports it,
// e.g. "Thu Jan 02 2025".
const DateKeyLayout = "Mon Jan 02 2006"

const poolSize = 5

// Slot offsets added to the seed magnitude when picking from each pool.
const (
	actionOffset         = 1
	encouragementOffset  = 2
	verbOffset           = 3
	accomplishmentOffset = 4
	qualityOffset        = 5
	futureActionOffset   = 6
)

var templates = [poolSize]string{
	"Today you chose to {action}. {encouragement} You {verb} {accomplishment}, and that took real {quality}. Tomorrow, {futureAction}.",
	"{encouragement} The way you {verb} {accomplishment} shows your {quality}.",
	"You showed up and chose to {action}. Rest now, and tomorrow {futureAction}.",
	"Every time you {verb} {accomplishment}, your {quality} grows. {encouragement}",
	"Look back on today: you decided to {action} and {verb} {accomplishment}. Tomorrow, {futureAction}.",
}

var actions = [poolSize]string{
	"keep going when it got hard",
	"focus on what matters",
	"take one small step at a time",
	"protect your attention",
	"finish what you started",
}

var encouragements = [poolSize]string{
	"Be proud of yourself.",
	"That counts for more than you think.",
	"Progress is still progress.",
	"You are doing better than you feel.",
	"Small wins add up.",
}

var verbs = [poolSize]string{
	"worked through",
	"made space for",
	"moved forward on",
	"showed up for",
	"took care of",
}

var accomplishments = [poolSize]string{
	"your priorities",
	"the tasks in front of you",
	"a hard problem",
	"the people around you",
	"your own wellbeing",
}

var qualities = [poolSize]string{
	"patience",
	"courage",
	"discipline",
	"kindness",
	"focus",
}

var futureActions = [poolSize]string{
	"start fresh with the same energy",
	"pick one thing and give it your best",
	"be gentle with yourself",
	"build on what you did today",
	"trust the process a little more",
}

// Selection holds the pool indices chosen for one date key.
type Selection struct {
	Template       int
	Action         int
	Encouragement  int
	Verb           int
	Accomplishment int
	Quality        int
	FutureAction   int
}

// DateKey renders t with DateKeyLayout in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Seed folds the UTF-16 code units of dateKey into a rolling 31x hash with
// signed 32-bit wraparound at every step. The empty string seeds to 0.
func Seed(dateKey string) int32 {
	var seed int32
	for _, unit := range utf16.Encode([]rune(dateKey)) {
		seed = seed*31 + int32(unit)
	}
	return seed
}

// magnitude is |seed| widened to 64 bits so math.MinInt32 stays non-negative.
func magnitude(seed int32) int64 {
	abs := int64(seed)
	if abs < 0 {
		abs = -abs
	}
	return abs
}

// Pick returns the template and slot indices for dateKey.
func Pick(dateKey string) Selection {
	abs := magnitude(Seed(dateKey))
	at := func(offset int64) int {
		return int((abs + offset) % poolSize)
	}
	return Selection{
		Template:       at(0),
		Action:         at(actionOffset),
		Encouragement:  at(encouragementOffset),
		Verb:           at(verbOffset),
		Accomplishment: at(accomplishmentOffset),
		Quality:        at(qualityOffset),
		FutureAction:   at(futureActionOffset),
	}
}

// Render fills the template named by sel. Placeholders absent from the
// template are ignored.
func Render(sel Selection) string {
	replacer := strings.NewReplacer(
		"{action}", actions[sel.Action],
		"{encouragement}", encouragements[sel.Encouragement],
		"{verb}", verbs[sel.Verb],
		"{accomplishment}", accomplishments[sel.Accomplishment],
		"{quality}", qualities[sel.Quality],
		"{futureAction}", futureActions[sel.FutureAction],
	)
	return replacer.Replace(templates[sel.Template])
}

// Generate returns the message for dateKey. It never fails.
func Generate(dateKey string) string {
	return Render(Pick(dateKey))
}
