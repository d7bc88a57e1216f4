// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The services own all client-side state: the class registry mirror,
// the document list, the session registry with its active transcript,
// and the achievement watch. Adapters stay thin.
package services
