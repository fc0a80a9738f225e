// Package sequence loads the coordinate records the program iterates.
//
// A sequence file has a single top-level "records" list. YAML files accept
// each record as a mapping or a flow list:
//
//	records:
//	  - {x: 1, y: 2, z: 3}
//	  - [4, 5]
//
// CUE files are unified with a closed #Vec schema whose defaults supply the
// missing components:
//
//	records: [{x: 1, y: 2, z: 3}, {x: 4, y: 5}]
//
// Components omitted in either format default to (0, 0, 1).
package sequence
