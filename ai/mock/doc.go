// Package mock provides test doubles for the ai interfaces.
//
// Mock constructors return concrete types so tests can inject behavior via
// the public function fields and assert on call counts.
package mock
