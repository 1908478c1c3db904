package training

import (
	"fmt"
	"math"
	"sort"
)

// Evaluation metrics over a prediction vector and its labels. Regression
// metrics compare raw values; classification metrics treat labels > 0 as
// the positive class and raw scores >= 0 (equivalently probabilities
// >= 0.5) as positive predictions.

func checkMetricLen(pred, label []float64) {
	if len(pred) != len(label) {
		panic(fmt.Sprintf("training: metric length mismatch: %d != %d", len(pred), len(label)))
	}
}

// RMSE returns the root mean squared error.
func RMSE(pred, label []float64) float64 {
	checkMetricLen(pred, label)
	if len(pred) == 0 {
		return 0
	}
	var sum float64
	for i := range pred {
		d := pred[i] - label[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(pred)))
}

// MAE returns the mean absolute error.
func MAE(pred, label []float64) float64 {
	checkMetricLen(pred, label)
	if len(pred) == 0 {
		return 0
	}
	var sum float64
	for i := range pred {
		sum += math.Abs(pred[i] - label[i])
	}
	return sum / float64(len(pred))
}

// Accuracy returns the fraction of rows whose raw score falls on the same
// side of zero as the label.
func Accuracy(pred, label []float64) float64 {
	checkMetricLen(pred, label)
	if len(pred) == 0 {
		return 0
	}
	correct := 0
	for i := range pred {
		if (pred[i] >= 0) == (label[i] > 0) {
			correct++
		}
	}
	return float64(correct) / float64(len(pred))
}

// LogLoss returns the mean negative log-likelihood of the labels under a
// logistic model of the raw scores: log(1 + e^(-y*score)) with y in {-1,+1}
// taken from the label sign. Saturated scores stay finite.
func LogLoss(pred, label []float64) float64 {
	checkMetricLen(pred, label)
	if len(pred) == 0 {
		return 0
	}
	var sum float64
	for i := range pred {
		y := -1.0
		if label[i] > 0 {
			y = 1.0
		}
		z := -y * pred[i]
		if z > 0 {
			sum += z + math.Log1p(math.Exp(-z))
		} else {
			sum += math.Log1p(math.Exp(z))
		}
	}
	return sum / float64(len(pred))
}

// AUC returns the area under the ROC curve, computed by the rank statistic
// with tied scores assigned their average rank. A batch with only one class
// has no curve and reports 0.5.
func AUC(pred, label []float64) float64 {
	checkMetricLen(pred, label)

	n := len(pred)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return pred[order[a]] < pred[order[b]]
	})

	var nPos, nNeg int
	var rankSum float64
	for i := 0; i < n; {
		// Average the ranks of a tie group.
		j := i
		for j < n && pred[order[j]] == pred[order[i]] {
			j++
		}
		avgRank := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			if label[order[k]] > 0 {
				rankSum += avgRank
				nPos++
			} else {
				nNeg++
			}
		}
		i = j
	}
	if nPos == 0 || nNeg == 0 {
		return 0.5
	}
	return (rankSum - float64(nPos)*float64(nPos+1)/2) / (float64(nPos) * float64(nNeg))
}
