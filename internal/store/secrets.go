package store

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
)

// Secrets path
// projects/{project}/secrets/{secret}/versions/{version}

type secretsStore struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretsStore(client *secretmanager.Client, projectID string) *secretsStore {
	return &secretsStore{client: client, projectID: projectID}
}

// GetSecret returns the payload of name, which may be a bare secret id, a
// secret resource name or a full version resource name.
func (s *secretsStore) GetSecret(ctx context.Context, name string) ([]byte, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: versionName(s.projectID, name),
	})
	if status.Code(err) == codes.NotFound {
		return nil, errs.NewNotFoundError(fmt.Sprintf("secret %s not found", name))
	}
	if err != nil {
		return nil, errs.NewExternalServiceError("secretmanager", "failed to access secret", false, err)
	}
	return res.Payload.GetData(), nil
}

func versionName(projectID, name string) string {
	if !strings.HasPrefix(name, "projects/") {
		name = fmt.Sprintf("projects/%s/secrets/%s", projectID, name)
	}
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}
	return name
}
