// SPDX-License-Identifier: EPL-2.0

// Package config loads engine settings from YAML.
//
//	audio:
//	  sample_rate: 48000
//	  waveform_points: 1024
//	transport:
//	  tempo: 98
//	  numerator: 3
//	  denominator: 4
//	  quantize: eighth
//	fallback_tone:
//	  frequency: 220
//	log:
//	  level: debug
//
// Keys that are left out keep their Default value.
package config
