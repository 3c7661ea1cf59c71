// Package mock provides test doubles for the ai interfaces with
// deterministic default behavior and injectable function fields.
package mock
