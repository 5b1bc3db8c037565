// Package harness runs conformance scenarios against the built-in library
// and the result engine.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	prefixes:
//	  test: "http://example.org/test#"
//	builtins:
//	  - name: add ints
//	    call: add
//	    args: ["?x", "int:20", {int: 5}]
//	    expect:
//	      result: true
//	      bindings: {x: "int:25"}
//	  - call: divide
//	    args: ["?x", "int:1", "int:0"]
//	    expect:
//	      error: DIVISION_BY_ZERO
//	tables:
//	  - name: salaries
//	    columns:
//	      - {name: avgSalary, aggregate: avg}
//	    rows:
//	      - ["int:20"]
//	      - ["int:30"]
//	    expect:
//	      rows:
//	        - ["int:25"]
//
// Arguments and cells are tagged: "tag:value" text or a single-key map.
// "?name" is an unbound variable; a list under bindings expects a
// multi-value binding.
//
// # Deterministic Testing
//
// Every scenario runs against a fresh built-in runtime and a fresh
// in-memory store. Table cases are exported to the store with sequential
// IDs and read back before their rows are compared, so a scenario also
// checks the export round trip. Run returns the same result for the same
// scenario, which makes the canonical JSON snapshot usable as a golden
// file.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/math.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range result.Failed() {
//	    log.Println(c.Name, c.Errors)
//	}
package harness
