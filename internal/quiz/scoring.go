package quiz

const (
	pointsFirst  = 5
	pointsSecond = 3
	pointsRest   = 1
)

// PointsForRank awards points by speed among correct answerers.
func PointsForRank(rank int) int {
	switch {
	case rank < 0:
		return 0
	case rank == 0:
		return pointsFirst
	case rank == 1:
		return pointsSecond
	default:
		return pointsRest
	}
}

func scoreAnswers(correct string, order []string, answers map[string]string) []AnswerResult {
	results := make([]AnswerResult, 0, len(order))
	rank := 0
	for _, userID := range order {
		answer, ok := answers[userID]
		if !ok {
			continue
		}
		r := AnswerResult{UserID: userID, Answer: answer, Rank: -1}
		if answer == correct {
			r.Correct = true
			r.Rank = rank
			r.Points = PointsForRank(rank)
			rank++
		}
		results = append(results, r)
	}
	return results
}
