package services

// ServiceContainer holds instances of all the application services.
// It is the entry point the command handlers use.
type ServiceContainer struct {
	Review ReviewSvcFacade
	Intake IntakeSvc
}
