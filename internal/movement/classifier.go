// Package movement classifies roster transactions into directional
// movement phrases and a sentiment color.
package movement

import (
	"fmt"
	"regexp"

	"github.com/cmahoney/rosterwatch/internal/mlb"
)

// Color indicates whether a movement is favorable for the tracked team.
type Color int

const (
	ColorNeutral Color = iota
	ColorGood
	ColorBad
)

// String returns the color name for logging.
func (c Color) String() string {
	switch c {
	case ColorGood:
		return "good"
	case ColorBad:
		return "bad"
	default:
		return "neutral"
	}
}

// Result is the outcome of classifying one transaction. A zero Phrase
// means the type code was not recognized; the transaction is still
// notifiable, just without a movement line.
type Result struct {
	Phrase string
	Color  Color
}

const arrow = "➡️"

// Type-code tables. Codes come from the Stats API typeCode field; new
// codes appear occasionally, so unmatched codes classify as unknown
// rather than failing.
var (
	// Moves between rosters or organizations.
	assignmentCodes = map[string]bool{
		"ASG": true, // Assigned
		"CLW": true, // Claimed Off Waivers
		"CU":  true, // Recalled
		"SE":  true, // Selected
		"TR":  true, // Trade
		"OPT": true, // Optioned
		"OUT": true, // Outrighted
	}

	// Exits to free agency.
	exitCodes = map[string]bool{
		"DEC": true, // Declared Free Agency
		"REL": true, // Released
	}

	// Free agent signings.
	signingCodes = map[string]bool{
		"SFA": true, // Signed as Free Agent
		"SGN": true, // Signed
	}

	// Designated for assignment.
	designatedCodes = map[string]bool{
		"DES": true,
		"DFA": true,
	}

	statusChangeCode = "SC"
)

// Status-change sub-rules, checked in order: activation wins if a
// description somehow matches both.
var (
	activatedPattern = regexp.MustCompile(`(?i)activated.*injured list`)
	placedPattern    = regexp.MustCompile(`(?i)placed.*injured list`)
)

// Classify maps a transaction to a movement phrase and color. homeTeamID
// is the team the watcher is configured for; destinations matching it
// classify as favorable.
func Classify(tx mlb.Transaction, homeTeamID int64) Result {
	from := tx.FromTeamName()
	to := tx.ToTeamName()

	switch {
	case assignmentCodes[tx.TypeCode]:
		color := ColorBad
		if tx.ToTeamID() == homeTeamID {
			color = ColorGood
		}
		if tx.TypeCode == "ASG" {
			color = ColorNeutral
		}
		return Result{Phrase: phrase(from, to), Color: color}

	case exitCodes[tx.TypeCode]:
		return Result{Phrase: phrase(to, "FA"), Color: ColorBad}

	case signingCodes[tx.TypeCode]:
		return Result{Phrase: phrase("FA", to), Color: ColorGood}

	case designatedCodes[tx.TypeCode]:
		return Result{Phrase: phrase(to, "?"), Color: ColorBad}

	case tx.TypeCode == statusChangeCode:
		return classifyStatusChange(to, tx.Description)
	}

	return Result{Color: ColorNeutral}
}

func classifyStatusChange(to, description string) Result {
	if activatedPattern.MatchString(description) {
		return Result{Phrase: phrase("IL", to), Color: ColorGood}
	}
	if placedPattern.MatchString(description) {
		return Result{Phrase: phrase(to, "IL"), Color: ColorBad}
	}
	return Result{Phrase: phrase("?", to), Color: ColorGood}
}

func phrase(from, to string) string {
	return fmt.Sprintf("%s %s %s", from, arrow, to)
}
