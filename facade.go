package assets

import (
	"fmt"
	"reflect"

	assetscommand "github.com/goliatone/go-assets/command"
	"github.com/goliatone/go-assets/core"
	assetsquery "github.com/goliatone/go-assets/query"
)

type CommandQueryService interface {
	assetscommand.MutatingService
	assetsquery.EditabilityReader
}

type Commands struct {
	CreateAsset   *assetscommand.CreateAssetCommand
	SaveAssets    *assetscommand.SaveAssetsCommand
	MoveAsset     *assetscommand.MoveAssetCommand
	DeleteAsset   *assetscommand.DeleteAssetCommand
	RefreshStatus *assetscommand.RefreshStatusCommand
}

type Queries struct {
	IsOpenForEdit     *assetsquery.IsOpenForEditQuery
	FilterNotEditable *assetsquery.FilterNotEditableQuery
	ListAssetActivity *assetsquery.ListAssetActivityQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	activityReader assetsquery.AssetActivityReader
}

func WithActivityReader(reader assetsquery.AssetActivityReader) FacadeOption {
	return func(options *facadeOptions) {
		options.activityReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("assets: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	reader := cfg.activityReader
	if reader == nil {
		reader = resolveActivityReader(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		CreateAsset:   assetscommand.NewCreateAssetCommand(service),
		SaveAssets:    assetscommand.NewSaveAssetsCommand(service),
		MoveAsset:     assetscommand.NewMoveAssetCommand(service),
		DeleteAsset:   assetscommand.NewDeleteAssetCommand(service),
		RefreshStatus: assetscommand.NewRefreshStatusCommand(service),
	}
	facade.queries = Queries{
		IsOpenForEdit:     assetsquery.NewIsOpenForEditQuery(service),
		FilterNotEditable: assetsquery.NewFilterNotEditableQuery(service),
		ListAssetActivity: assetsquery.NewListAssetActivityQuery(reader),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// resolveActivityReader finds an activity source when the caller did not hand
// one in: the service itself, its wired activity store, or a repository
// factory exposing an ActivityStore accessor.
func resolveActivityReader(service CommandQueryService) assetsquery.AssetActivityReader {
	if service == nil {
		return nil
	}
	if reader, ok := service.(assetsquery.AssetActivityReader); ok {
		return reader
	}
	provider, ok := service.(interface {
		Dependencies() core.ServiceDependencies
	})
	if !ok {
		return nil
	}
	deps := provider.Dependencies()
	if deps.ActivityStore != nil {
		return deps.ActivityStore
	}
	if deps.RepositoryFactory == nil {
		return nil
	}

	factoryValue := reflect.ValueOf(deps.RepositoryFactory)
	if !factoryValue.IsValid() {
		return nil
	}
	if factoryValue.Kind() == reflect.Ptr && factoryValue.IsNil() {
		return nil
	}
	method := factoryValue.MethodByName("ActivityStore")
	if !method.IsValid() || method.Type().NumIn() != 0 || method.Type().NumOut() != 1 {
		return nil
	}

	results, ok := safeReflectCall(method)
	if !ok {
		return nil
	}
	if len(results) != 1 {
		return nil
	}
	candidate := results[0]
	if !candidate.IsValid() {
		return nil
	}
	if candidate.Kind() == reflect.Ptr && candidate.IsNil() {
		return nil
	}
	reader, ok := candidate.Interface().(assetsquery.AssetActivityReader)
	if !ok {
		return nil
	}
	return reader
}

func safeReflectCall(method reflect.Value) (_ []reflect.Value, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return method.Call(nil), true
}
