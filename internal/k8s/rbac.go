package k8s

import (
	"context"
	"fmt"

	rbacv1 "k8s.io/api/rbac/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// adminBindingName is the ClusterRoleBinding created for the invoking identity.
const adminBindingName = "cluster-admin-binding"

// AdminGranter grants cluster-admin access through the Kubernetes API.
type AdminGranter struct{}

// GrantClusterAdmin binds the cluster-admin role to user in the cluster the
// kubeconfig points at. An existing binding is treated as success.
func (AdminGranter) GrantClusterAdmin(ctx context.Context, kubeconfigPath, user string) error {
	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to build kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return grantClusterAdmin(ctx, clientset, user)
}

func grantClusterAdmin(ctx context.Context, clientset kubernetes.Interface, user string) error {
	binding := &rbacv1.ClusterRoleBinding{
		ObjectMeta: metav1.ObjectMeta{
			Name: adminBindingName,
		},
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "ClusterRole",
			Name:     "cluster-admin",
		},
		Subjects: []rbacv1.Subject{
			{
				APIGroup: rbacv1.GroupName,
				Kind:     rbacv1.UserKind,
				Name:     user,
			},
		},
	}

	_, err := clientset.RbacV1().ClusterRoleBindings().Create(ctx, binding, metav1.CreateOptions{})
	if err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create cluster-admin binding for %s: %w", user, err)
	}
	return nil
}
