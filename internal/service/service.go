// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from the handler, applies the store's rules (id
// assignment, defaults, inventory bookkeeping, the legacy order-id
// ranges), and calls repository methods to interact with the data.
package service
