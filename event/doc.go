// Package event provides Notifier, the ordered multicast dispatcher every
// change channel in bindparty is built on.
//
// Delivery is synchronous: Fire returns only after every subscriber has run.
// A failing subscriber stops delivery to the ones after it and the failure
// reaches the code that fired.
package event
