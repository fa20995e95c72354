package viewmodels

import (
	"context"
	"fmt"
	"log"
	"strings"

	"repohub/internal/domain"
	"repohub/internal/eventbus"
	"repohub/internal/rx"
	"repohub/internal/ui/commands"
)

// RepositoryDetails is everything the detail screen loads at once
type RepositoryDetails struct {
	Detail *domain.RepositoryDetail
	Readme string
}

// RepositoryViewModel loads one repository and its README
type RepositoryViewModel struct {
	deps  Dependencies
	owner string
	name  string

	detail *rx.Value[*domain.RepositoryDetail]
	readme string
	failed *rx.Value[bool]

	load *commands.Command[RepositoryDetails]
}

// NewRepositoryViewModel creates a detail view-model for owner/name
func NewRepositoryViewModel(deps Dependencies, owner, name string) (*RepositoryViewModel, error) {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("repository requires an owner and a name")
	}
	if deps.Service == nil || deps.Scheduler == nil {
		return nil, fmt.Errorf("repository view-model requires a service and a scheduler")
	}

	vm := &RepositoryViewModel{
		deps:   deps,
		owner:  owner,
		name:   name,
		detail: rx.NewValue[*domain.RepositoryDetail](nil),
		failed: rx.NewValue(false),
	}
	vm.load = commands.New("repository "+vm.FullName(), deps.Scheduler, vm.fetch, deps.commandOptions()...)
	vm.load.Results().Subscribe(func(r RepositoryDetails) {
		vm.readme = r.Readme
		vm.failed.Set(false)
		vm.detail.Set(r.Detail)
	})
	vm.load.Errors().Subscribe(func(err error) {
		log.Printf("RepositoryViewModel: loading %s failed: %v", vm.FullName(), err)
		vm.failed.Set(true)
		deps.publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to load %s: %v", vm.FullName(), err),
			Err:     err,
		})
	})
	return vm, nil
}

func (vm *RepositoryViewModel) fetch(ctx context.Context) (RepositoryDetails, error) {
	detail, err := vm.deps.Service.GetRepository(ctx, vm.owner, vm.name)
	if err != nil {
		return RepositoryDetails{}, err
	}
	// A missing README is not fatal
	readme, err := vm.deps.Service.GetReadme(ctx, vm.owner, vm.name)
	if err != nil {
		log.Printf("RepositoryViewModel: README for %s unavailable: %v", vm.FullName(), err)
		readme = ""
	}
	return RepositoryDetails{Detail: detail, Readme: readme}, nil
}

func (vm *RepositoryViewModel) Owner() string { return vm.owner }

func (vm *RepositoryViewModel) Name() string { return vm.name }

// FullName returns "owner/name"
func (vm *RepositoryViewModel) FullName() string {
	return vm.owner + "/" + vm.name
}

// LoadCommand fetches the repository and its README
func (vm *RepositoryViewModel) LoadCommand() *commands.Command[RepositoryDetails] {
	return vm.load
}

// Detail emits nil until the repository has loaded
func (vm *RepositoryViewModel) Detail() rx.Observable[*domain.RepositoryDetail] {
	return vm.detail
}

// Current returns the loaded repository or nil
func (vm *RepositoryViewModel) Current() *domain.RepositoryDetail {
	return vm.detail.Get()
}

// Readme returns the README text, empty if none was found
func (vm *RepositoryViewModel) Readme() string {
	return vm.readme
}

// Failed is true after the last load failed
func (vm *RepositoryViewModel) Failed() rx.Observable[bool] {
	return vm.failed
}
