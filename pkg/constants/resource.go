// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package constants

// Resource names known to the built-in catalog.
const (
	ResourceExposure        = "exposure"
	ResourceVulnerability   = "vulnerability"
	ResourceLossModel       = "lossmodel"
	ResourceLossConfig      = "lossconfig"
	ResourceLossCalculation = "losscalculation"
)

const (
	// DefaultKeyField identifies records in every backend collection
	DefaultKeyField = "_oid"

	// DefaultShakemap is the shakemap archive the calculation run uses when none is given
	DefaultShakemap = "model/shapefiles.zip"
)
