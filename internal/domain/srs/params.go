package srs

import (
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// Params defines all configurable parameters for the scheduling algorithm.
// The defaults mirror the product's tuning; everything here is overridable
// through configuration rather than baked in as literals.
type Params struct {
	// Core limits
	MinEaseFactor float64
	MaxEaseFactor float64

	// MinIntervalDays is the floor applied to every computed interval.
	// It prevents an interval from collapsing to 0 and making a concept
	// immediately due again after a review.
	MinIntervalDays float64

	// MasteryThresholdDays is the interval at which a concept in the
	// review phase is promoted to mastered.
	MasteryThresholdDays float64

	// Ease factor adjustments per grade
	EaseAdjustment map[domain.ReviewGrade]float64

	// HardIntervalFactor halves the interval on a hard grade.
	HardIntervalFactor float64

	// MediumEaseDamping scales the ease factor on a medium grade, so the
	// interval grows slower than a full ease multiplication.
	MediumEaseDamping float64

	// EasyIntervalBonus multiplies the ease factor on an easy grade.
	EasyIntervalBonus float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	MinEaseFactor        float64
	MaxEaseFactor        float64
	MinIntervalDays      float64
	MasteryThresholdDays float64

	HardEaseAdjustment float64
	EasyEaseAdjustment float64

	HardIntervalFactor float64
	MediumEaseDamping  float64
	EasyIntervalBonus  float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 2.5,

		MinIntervalDays:      1.0,
		MasteryThresholdDays: 21.0,

		EaseAdjustment: map[domain.ReviewGrade]float64{
			domain.ReviewGradeHard:   -0.2,
			domain.ReviewGradeMedium: 0.0,
			domain.ReviewGradeEasy:   0.1,
		},

		HardIntervalFactor: 0.5,
		MediumEaseDamping:  0.85,
		EasyIntervalBonus:  1.3,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}
	if config.MinIntervalDays > 0 {
		params.MinIntervalDays = config.MinIntervalDays
	}
	if config.MasteryThresholdDays > 0 {
		params.MasteryThresholdDays = config.MasteryThresholdDays
	}

	if config.HardEaseAdjustment != 0 {
		params.EaseAdjustment[domain.ReviewGradeHard] = config.HardEaseAdjustment
	}
	if config.EasyEaseAdjustment != 0 {
		params.EaseAdjustment[domain.ReviewGradeEasy] = config.EasyEaseAdjustment
	}

	if config.HardIntervalFactor > 0 {
		params.HardIntervalFactor = config.HardIntervalFactor
	}
	if config.MediumEaseDamping > 0 {
		params.MediumEaseDamping = config.MediumEaseDamping
	}
	if config.EasyIntervalBonus > 0 {
		params.EasyIntervalBonus = config.EasyIntervalBonus
	}

	return params
}
