package kuberunner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"benchreg/internal/config"
	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

const containerMountRoot = "/mnt/workspace"

// Runner executes cube tasks as Kubernetes Jobs. One Job per task; the call
// blocks until the Job finishes and surfaces failures verbatim.
type Runner struct {
	client       kubernetes.Interface
	namespace    string
	pollInterval time.Duration
}

var _ ports.CubeRunner = (*Runner)(nil)

// NewRunner creates a Kubernetes-backed cube runner.
func NewRunner(cfg *config.RunnerConfig) (*Runner, error) {
	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		// Try default kubeconfig location
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	client, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create k8s client: %w", err)
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "benchreg-runs"
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	return &Runner{client: client, namespace: namespace, pollInterval: pollInterval}, nil
}

func (r *Runner) Run(ctx context.Context, spec ports.RunSpec) error {
	if spec.Cube.Image == "" {
		return fmt.Errorf("cube %s has no container image: %w", spec.Cube.UID(), domain.ErrInvalidState)
	}

	job := r.buildJob(spec)
	created, err := r.client.BatchV1().Jobs(r.namespace).Create(ctx, job, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("create run job: %w", err)
	}

	logger := log.WithFields(log.Fields{"job": created.Name, "task": spec.Task, "cube": spec.Cube.UID()})
	logger.Info("cube task submitted")

	defer func() {
		policy := metav1.DeletePropagationBackground
		err := r.client.BatchV1().Jobs(r.namespace).
			Delete(context.Background(), created.Name, metav1.DeleteOptions{PropagationPolicy: &policy})
		if err != nil {
			logger.WithError(err).Warn("could not clean up run job")
		}
	}()

	return r.wait(ctx, created.Name, logger)
}

func (r *Runner) wait(ctx context.Context, name string, logger *log.Entry) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		job, err := r.client.BatchV1().Jobs(r.namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return fmt.Errorf("poll run job: %w", err)
		}
		if job.Status.Succeeded > 0 {
			logger.Info("cube task completed")
			return nil
		}
		for _, cond := range job.Status.Conditions {
			if cond.Type == batchv1.JobFailed && cond.Status == corev1.ConditionTrue {
				return fmt.Errorf("cube task failed: %s", cond.Message)
			}
		}
	}
}

func (r *Runner) buildJob(spec ports.RunSpec) *batchv1.Job {
	args := []string{"run", "--task", spec.Task}
	for key, value := range spec.Parameters {
		args = append(args, fmt.Sprintf("--%s=%s", key, value))
	}

	var volumes []corev1.Volume
	var mounts []corev1.VolumeMount
	pathType := corev1.HostPathDirectoryOrCreate
	for name, hostPath := range spec.Mounts {
		volName := volumeName(name)
		containerPath := filepath.Join(containerMountRoot, name)
		volumes = append(volumes, corev1.Volume{
			Name: volName,
			VolumeSource: corev1.VolumeSource{
				HostPath: &corev1.HostPathVolumeSource{Path: hostPath, Type: &pathType},
			},
		})
		mounts = append(mounts, corev1.VolumeMount{Name: volName, MountPath: containerPath})
		args = append(args, fmt.Sprintf("--%s=%s", name, containerPath))
	}

	backoffLimit := int32(0)
	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			// Task names like sanity_check are not valid DNS-1123 labels.
			Name: fmt.Sprintf("cube-%s-%s", strings.ReplaceAll(spec.Task, "_", "-"), spec.RunID[:8]),
			Labels: map[string]string{
				"app.kubernetes.io/managed-by": "benchreg",
				"benchreg.io/run-id":           spec.RunID,
			},
		},
		Spec: batchv1.JobSpec{
			BackoffLimit: &backoffLimit,
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					RestartPolicy: corev1.RestartPolicyNever,
					Containers: []corev1.Container{{
						Name:         "cube",
						Image:        spec.Cube.Image,
						Args:         args,
						VolumeMounts: mounts,
					}},
					Volumes: volumes,
				},
			},
		},
	}
}

func volumeName(mount string) string {
	return strings.ReplaceAll(mount, "_", "-")
}
