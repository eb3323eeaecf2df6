package gocommand

import (
	"context"
	"fmt"
	"strings"

	assetscommand "github.com/goliatone/go-assets/command"
	assetsquery "github.com/goliatone/go-assets/query"
	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(cmd)
}

func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) AddResolver(key string, resolver command.Resolver) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.AddResolver(strings.TrimSpace(key), resolver)
}

func (a *RegistryAdapter) AddQueueResolver(key string, queueRegistry *jobqueuecommand.Registry) error {
	if queueRegistry == nil {
		return fmt.Errorf("gocommand: queue registry is required")
	}
	return a.AddResolver(key, jobqueuecommand.QueueResolver(queueRegistry))
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	if a == nil || a.registry == nil {
		return false
	}
	return a.registry.HasResolver(strings.TrimSpace(key))
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeCommand[T any](cmd command.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeCommandFunc[T any](handler command.CommandFunc[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(handler, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func SubscribeQueryFunc[T any, R any](qry command.QueryFunc[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd command.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	subscription := SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.RegisterCommand(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// PipelineSubscriptions holds the dispatcher subscriptions for the full
// asset command/query surface, so hosts can tear them down as one unit.
type PipelineSubscriptions struct {
	subs []commanddispatcher.Subscription
}

func (p *PipelineSubscriptions) Unsubscribe() {
	if p == nil {
		return
	}
	for _, sub := range p.subs {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	p.subs = nil
}

// RegisterAssetPipeline registers and subscribes the five asset mutation
// commands and the editability/activity queries against one registry. The
// activity listing query is skipped when no reader is available.
func RegisterAssetPipeline(
	adapter *RegistryAdapter,
	svc assetscommand.MutatingService,
	editability assetsquery.EditabilityReader,
	activity assetsquery.AssetActivityReader,
	runnerOpts ...runner.Option,
) (*PipelineSubscriptions, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if svc == nil {
		return nil, fmt.Errorf("gocommand: mutating service is required")
	}
	if editability == nil {
		return nil, fmt.Errorf("gocommand: editability reader is required")
	}

	out := &PipelineSubscriptions{}
	fail := func(err error) (*PipelineSubscriptions, error) {
		out.Unsubscribe()
		return nil, err
	}

	if sub, err := RegisterAndSubscribe(adapter, assetscommand.NewCreateAssetCommand(svc), runnerOpts...); err != nil {
		return fail(err)
	} else {
		out.subs = append(out.subs, sub)
	}
	if sub, err := RegisterAndSubscribe(adapter, assetscommand.NewSaveAssetsCommand(svc), runnerOpts...); err != nil {
		return fail(err)
	} else {
		out.subs = append(out.subs, sub)
	}
	if sub, err := RegisterAndSubscribe(adapter, assetscommand.NewMoveAssetCommand(svc), runnerOpts...); err != nil {
		return fail(err)
	} else {
		out.subs = append(out.subs, sub)
	}
	if sub, err := RegisterAndSubscribe(adapter, assetscommand.NewDeleteAssetCommand(svc), runnerOpts...); err != nil {
		return fail(err)
	} else {
		out.subs = append(out.subs, sub)
	}
	if sub, err := RegisterAndSubscribe(adapter, assetscommand.NewRefreshStatusCommand(svc), runnerOpts...); err != nil {
		return fail(err)
	} else {
		out.subs = append(out.subs, sub)
	}

	if sub, err := RegisterAndSubscribeQuery(adapter, assetsquery.NewIsOpenForEditQuery(editability), runnerOpts...); err != nil {
		return fail(err)
	} else {
		out.subs = append(out.subs, sub)
	}
	if sub, err := RegisterAndSubscribeQuery(adapter, assetsquery.NewFilterNotEditableQuery(editability), runnerOpts...); err != nil {
		return fail(err)
	} else {
		out.subs = append(out.subs, sub)
	}
	if activity != nil {
		if sub, err := RegisterAndSubscribeQuery(adapter, assetsquery.NewListAssetActivityQuery(activity), runnerOpts...); err != nil {
			return fail(err)
		} else {
			out.subs = append(out.subs, sub)
		}
	}

	return out, nil
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry command.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	subscription := SubscribeQuery(qry, runnerOpts...)
	if err := adapter.RegisterQuery(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}
