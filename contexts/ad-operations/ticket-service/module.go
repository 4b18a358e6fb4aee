package ticketservice

import (
	"log/slog"
	"time"

	httpadapter "trafficdesk/contexts/ad-operations/ticket-service/adapters/http"
	"trafficdesk/contexts/ad-operations/ticket-service/adapters/memory"
	"trafficdesk/contexts/ad-operations/ticket-service/application/commands"
	"trafficdesk/contexts/ad-operations/ticket-service/application/queries"
	"trafficdesk/contexts/ad-operations/ticket-service/application/workers"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Deployer workers.Deployer
	Store    *memory.Store
	Queue    *memory.Queue
}

type Dependencies struct {
	Tickets     ports.TicketRepository
	Directory   ports.Directory
	Queue       ports.DeploymentQueue
	Gateway     ports.PlatformGateway
	Credentials ports.CredentialResolver
	Notifier    ports.Notifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	MaxAttempts int
	MaxElapsed  time.Duration
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createTicket := commands.CreateTicketUseCase{
		Tickets:     deps.Tickets,
		Directory:   deps.Directory,
		Notifier:    deps.Notifier,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updateTicket := commands.UpdateTicketUseCase{
		Tickets:   deps.Tickets,
		Directory: deps.Directory,
		Notifier:  deps.Notifier,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	deleteTicket := commands.DeleteTicketUseCase{
		Tickets: deps.Tickets,
		Logger:  deps.Logger,
	}
	evaluateTicket := commands.EvaluateTicketUseCase{
		Tickets:     deps.Tickets,
		Directory:   deps.Directory,
		Notifier:    deps.Notifier,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	requestDeployment := commands.RequestDeploymentUseCase{
		Tickets:     deps.Tickets,
		Directory:   deps.Directory,
		Queue:       deps.Queue,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}

	getTicket := queries.GetTicketUseCase{
		Tickets: deps.Tickets,
		Logger:  deps.Logger,
	}
	listTickets := queries.ListTicketsUseCase{
		Tickets: deps.Tickets,
		Logger:  deps.Logger,
	}

	deployer := workers.Deployer{
		Tickets:     deps.Tickets,
		Directory:   deps.Directory,
		Queue:       deps.Queue,
		Gateway:     deps.Gateway,
		Credentials: deps.Credentials,
		Notifier:    deps.Notifier,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		MaxAttempts: deps.MaxAttempts,
		MaxElapsed:  deps.MaxElapsed,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateTicket:      createTicket,
			UpdateTicket:      updateTicket,
			DeleteTicket:      deleteTicket,
			EvaluateTicket:    evaluateTicket,
			RequestDeployment: requestDeployment,
			GetTicket:         getTicket,
			ListTickets:       listTickets,
			Logger:            deps.Logger,
		},
		Deployer: deployer,
	}
}

// NewInMemoryModule wires the module against in-process storage and queue.
// Gateway and Credentials stay injectable so tests can point deployments at
// a stub platform.
func NewInMemoryModule(
	seed []entities.Ticket,
	directory ports.Directory,
	gateway ports.PlatformGateway,
	credentials ports.CredentialResolver,
	notifier ports.Notifier,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	queue := memory.NewQueue()
	module := NewModule(Dependencies{
		Tickets:     store,
		Directory:   directory,
		Queue:       queue,
		Gateway:     gateway,
		Credentials: credentials,
		Notifier:    notifier,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	module.Queue = queue
	return module
}
