package models

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Route - 시작점부터 목표점까지의 좌표 목록 (양 끝 포함)
// nil 이면 경로 없음
type Route []Coordinate

// StepCost - 인접 셀 간 이동 비용 (직선 1, 대각선 √2)
func StepCost(from, to Coordinate) float64 {
	if from.IsDiagonalTo(to) {
		return math.Sqrt2
	}
	return 1.0
}

// Steps - 구간별 이동 비용 목록
func (r Route) Steps() []float64 {
	if len(r) < 2 {
		return nil
	}
	steps := make([]float64, 0, len(r)-1)
	for i := 1; i < len(r); i++ {
		steps = append(steps, StepCost(r[i-1], r[i]))
	}
	return steps
}

// Cost - 전체 이동 비용
func (r Route) Cost() float64 {
	return floats.Sum(r.Steps())
}

// Last - 마지막 좌표
func (r Route) Last() (Coordinate, bool) {
	if len(r) == 0 {
		return Coordinate{}, false
	}
	return r[len(r)-1], true
}

// Clone - 복사본 반환
func (r Route) Clone() Route {
	if r == nil {
		return nil
	}
	out := make(Route, len(r))
	copy(out, r)
	return out
}
