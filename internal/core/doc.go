// Package core provides the business logic of the QuimbayaEval dashboard.
//
// This package holds all domain logic independent of any UI or transport
// layer. The web server and the evalctl CLI both drive it.
//
// # Data
//
// [Service] keeps users, evaluations, courses, PQRS tickets, grade history,
// pending submissions and course performance in memory, seeded from
// [SeedData]. Every record type implements Field(key) so tables can sort
// it by column key:
//
//	svc := core.NewService()
//	users := svc.Users(core.UserFilter{Role: core.RoleTeacher})
//
// # Mutations
//
// Mutations validate their input with [Validate], return wrapped sentinel
// errors ([ErrNotFound], [ErrInvalidInput]) and append an [AuditEntry]
// carrying the actor, IP and user agent stored in the context.
//
// # Maintenance
//
// [Service.StartRetentionScheduler] prunes the audit log by age and size.
// [ExportLimiter] bounds how many CSV exports run at once.
//
// # Errors
//
// [MapError] turns any error into a [UserMessage] with a support code.
package core
