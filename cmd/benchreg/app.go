package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"benchreg/internal/adapters/secondary/kuberunner"
	"benchreg/internal/adapters/secondary/localfs"
	"benchreg/internal/adapters/secondary/restclient"
	"benchreg/internal/config"
	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
	"benchreg/internal/core/services"
)

// app wires the client-side stack once per invocation. The cube runner is
// built on demand because most commands never execute anything.
type app struct {
	cfg    *config.Config
	store  *localfs.Store
	client *restclient.Client

	benchmarks   *services.Reconciler[*domain.Benchmark]
	cubes        *services.Reconciler[*domain.Cube]
	datasets     *services.Reconciler[*domain.Dataset]
	results      *services.Reconciler[*domain.Result]
	associations *services.AssociationService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store := localfs.NewStore(cfg.Storage.Root)
	client := restclient.New(cfg.Registry.URL, cfg.Registry.Token, cfg.Storage.DownloadDir, cfg.Registry.Timeout)

	benchmarks := services.NewBenchmarkReconciler(client, store)
	cubes := services.NewCubeReconciler(client, store)
	datasets := services.NewDatasetReconciler(client, store)
	results := services.NewResultReconciler(client, store)
	assocRec := services.NewAssociationReconciler(client)

	return &app{
		cfg:          cfg,
		store:        store,
		client:       client,
		benchmarks:   benchmarks,
		cubes:        cubes,
		datasets:     datasets,
		results:      results,
		associations: services.NewAssociationService(client, benchmarks, datasets, cubes, assocRec),
	}, nil
}

func (a *app) runner() (ports.CubeRunner, error) {
	return kuberunner.NewRunner(&a.cfg.Runner)
}

func (a *app) execution() (*services.ExecutionService, error) {
	runner, err := a.runner()
	if err != nil {
		return nil, err
	}
	return services.NewExecutionService(a.cubes, a.store, runner), nil
}

func (a *app) preparation() (*services.DataPreparationService, *services.ExecutionService, error) {
	runner, err := a.runner()
	if err != nil {
		return nil, nil, err
	}
	exec := services.NewExecutionService(a.cubes, a.store, runner)
	return services.NewDataPreparationService(exec, a.store, runner), exec, nil
}

func (a *app) compatTest() (*services.CompatTestService, error) {
	prep, exec, err := a.preparation()
	if err != nil {
		return nil, err
	}
	return services.NewCompatTestService(a.benchmarks, a.datasets, a.client, a.store, prep, exec), nil
}

// scope maps the --local flag onto the reconciler read scope.
func scope(localOnly bool) services.Scope {
	if localOnly {
		return services.ScopeLocalOnly
	}
	return services.ScopeAll
}

func printYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
