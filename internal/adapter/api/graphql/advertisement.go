package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/domain/service"
	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/machinebox/graphql"
)

var (
	_ service.AdvertisementAPI    = new(advertisementClient)
	_ service.AdvertisementLister = new(advertisementClient)
)

// The backend declares $type as String! on create and as the AdvertisementType
// enum on update. Both declarations must stay as they are.
const createAdvertisementMutation = `
mutation CreateAdvertisement(
	$organizationId: ID!
	$name: String!
	$type: String!
	$startDate: Date!
	$endDate: Date!
	$file: String!
) {
	createAdvertisement(
		input: {
			organizationId: $organizationId
			name: $name
			type: $type
			startDate: $startDate
			endDate: $endDate
			mediaFile: $file
		}
	) {
		advertisement {
			_id
		}
	}
}`

// $type is the AdvertisementType enum here, unlike the create mutation.
const updateAdvertisementMutation = `
mutation UpdateAdvertisement(
	$id: ID!
	$name: String
	$file: String
	$type: AdvertisementType
	$startDate: Date
	$endDate: Date
) {
	updateAdvertisement(
		input: {
			_id: $id
			name: $name
			mediaFile: $file
			type: $type
			startDate: $startDate
			endDate: $endDate
		}
	) {
		advertisement {
			_id
		}
	}
}`

const organizationAdvertisementsQuery = `
query OrganizationAdvertisements($id: ID!, $first: Int, $after: String) {
	organizations(id: $id) {
		_id
		advertisements(first: $first, after: $after) {
			edges {
				node {
					_id
					name
					mediaUrl
					startDate
					endDate
					type
				}
				cursor
			}
			pageInfo {
				startCursor
				endCursor
				hasNextPage
				hasPreviousPage
			}
			totalCount
		}
	}
}`

type advertisementClient struct {
	client *graphql.Client
	token  string
}

func NewAdvertisementClient(url, token string, timeout time.Duration) *advertisementClient {
	httpClient := &http.Client{Timeout: timeout}
	return &advertisementClient{
		client: graphql.NewClient(url, graphql.WithHTTPClient(httpClient)),
		token:  token,
	}
}

type mutationResponse struct {
	Advertisement struct {
		ID string `json:"_id"`
	} `json:"advertisement"`
}

func (c *advertisementClient) CreateAdvertisement(ctx context.Context, payload entity.CreatePayload) (string, error) {
	req := c.newRequest(createAdvertisementMutation)
	req.Var("organizationId", payload.OrganizationID)
	req.Var("name", payload.Name)
	req.Var("type", string(payload.Type))
	req.Var("startDate", payload.StartDate)
	req.Var("endDate", payload.EndDate)
	req.Var("file", payload.File)

	var resp struct {
		CreateAdvertisement mutationResponse `json:"createAdvertisement"`
	}
	if err := c.client.Run(ctx, req, &resp); err != nil {
		slog.Error("error creating advertisement", "error", err)
		return "", remoteError(err)
	}

	return resp.CreateAdvertisement.Advertisement.ID, nil
}

// UpdateAdvertisement sends only the variables present in the payload.
func (c *advertisementClient) UpdateAdvertisement(ctx context.Context, payload entity.UpdatePayload) (string, error) {
	req := c.newRequest(updateAdvertisementMutation)
	req.Var("id", payload.ID)
	if payload.Name != nil {
		req.Var("name", *payload.Name)
	}
	if payload.File != nil {
		req.Var("file", *payload.File)
	}
	if payload.Type != nil {
		req.Var("type", string(*payload.Type))
	}
	if payload.StartDate != nil {
		req.Var("startDate", *payload.StartDate)
	}
	if payload.EndDate != nil {
		req.Var("endDate", *payload.EndDate)
	}

	var resp struct {
		UpdateAdvertisement mutationResponse `json:"updateAdvertisement"`
	}
	if err := c.client.Run(ctx, req, &resp); err != nil {
		slog.Error("error updating advertisement", "id", payload.ID, "error", err)
		return "", remoteError(err)
	}

	return resp.UpdateAdvertisement.Advertisement.ID, nil
}

type advertisementNode struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	MediaURL  string `json:"mediaUrl"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Type      string `json:"type"`
}

type advertisementsResponse struct {
	Organizations []struct {
		ID             string `json:"_id"`
		Advertisements struct {
			Edges []struct {
				Node   advertisementNode `json:"node"`
				Cursor string            `json:"cursor"`
			} `json:"edges"`
			PageInfo struct {
				StartCursor     string `json:"startCursor"`
				EndCursor       string `json:"endCursor"`
				HasNextPage     bool   `json:"hasNextPage"`
				HasPreviousPage bool   `json:"hasPreviousPage"`
			} `json:"pageInfo"`
			TotalCount int `json:"totalCount"`
		} `json:"advertisements"`
	} `json:"organizations"`
}

func (c *advertisementClient) ListAdvertisements(ctx context.Context, organizationID string, first int, after *string) (entity.AdvertisementPage, error) {
	req := c.newRequest(organizationAdvertisementsQuery)
	req.Var("id", organizationID)
	req.Var("first", first)
	if after != nil {
		req.Var("after", *after)
	}

	var resp advertisementsResponse
	if err := c.client.Run(ctx, req, &resp); err != nil {
		slog.Error("error listing advertisements", "organization_id", organizationID, "error", err)
		return entity.AdvertisementPage{}, remoteError(err)
	}

	if len(resp.Organizations) == 0 {
		return entity.AdvertisementPage{}, errors.NewDomainError(errors.ErrNoDataFound, "organization %s not found", organizationID)
	}

	ads := resp.Organizations[0].Advertisements
	page := entity.AdvertisementPage{
		Advertisements: make([]entity.Advertisement, 0, len(ads.Edges)),
		PageInfo: entity.PageInfo{
			StartCursor:     ads.PageInfo.StartCursor,
			EndCursor:       ads.PageInfo.EndCursor,
			HasNextPage:     ads.PageInfo.HasNextPage,
			HasPreviousPage: ads.PageInfo.HasPreviousPage,
		},
		TotalCount: ads.TotalCount,
	}
	for _, edge := range ads.Edges {
		page.Advertisements = append(page.Advertisements, entity.Advertisement{
			ID:        edge.Node.ID,
			Name:      edge.Node.Name,
			MediaURL:  edge.Node.MediaURL,
			Type:      entity.AdvertisementType(edge.Node.Type),
			StartDate: edge.Node.StartDate,
			EndDate:   edge.Node.EndDate,
		})
	}

	return page, nil
}

func (c *advertisementClient) newRequest(query string) *graphql.Request {
	req := graphql.NewRequest(query)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req
}

// remoteError keeps the server's message so it can be shown to the user as is.
func remoteError(err error) error {
	return errors.NewDomainError(errors.ErrRemote, "%s", strings.TrimPrefix(err.Error(), "graphql: "))
}
