// Package dynamo stores credential vaults in a single DynamoDB table.
//
// Table schema:
//   - Partition key: pk (string) - "vault#<identity>" for vault items,
//     "meta#owner" for the owner item
//
// Vault items carry the ordered sequence as a JSON string in "records" and a
// numeric "version" that every write is conditioned on.
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name credential-vault \
//	  --attribute-definitions AttributeName=pk,AttributeType=S \
//	  --key-schema AttributeName=pk,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dimitrije/credential-vault/internal/models"
	"github.com/dimitrije/credential-vault/internal/vault"
)

const (
	vaultKeyPrefix = "vault#"
	ownerKey       = "meta#owner"
)

// ErrConcurrentModification is returned when another writer committed to the
// same vault between our read and our conditional write.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// Client is the subset of the DynamoDB API the store needs.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

var _ vault.Store = (*Store)(nil)

type Store struct {
	client    Client
	tableName string
}

func NewStore(client Client, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

func (s *Store) Load(ctx context.Context, id vault.Identity) ([]models.Credential, error) {
	records, _, err := s.load(ctx, id)
	return records, err
}

// Mutate writes with a condition on the version read, so a concurrent writer
// makes it fail with ErrConcurrentModification instead of losing an update.
func (s *Store) Mutate(ctx context.Context, id vault.Identity, fn vault.MutateFunc) error {
	current, version, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		next = []models.Credential{}
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"pk":       &types.AttributeValueMemberS{Value: vaultKeyPrefix + string(id)},
			"identity": &types.AttributeValueMemberS{Value: string(id)},
			"records":  &types.AttributeValueMemberS{Value: string(encoded)},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(version+1, 10)},
		},
	}
	if version == 0 {
		input.ConditionExpression = aws.String("attribute_not_exists(pk)")
	} else {
		input.ConditionExpression = aws.String("version = :v")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
		}
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to save credentials to DynamoDB: %w", err)
	}
	return nil
}

func (s *Store) SetOwner(ctx context.Context, id vault.Identity) (vault.Identity, error) {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"pk":       &types.AttributeValueMemberS{Value: ownerKey},
			"identity": &types.AttributeValueMemberS{Value: string(id)},
		},
		ConditionExpression: aws.String("attribute_not_exists(pk)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if !errors.As(err, &condErr) {
			return "", fmt.Errorf("failed to set owner in DynamoDB: %w", err)
		}
	}
	return s.Owner(ctx)
}

func (s *Store) Owner(ctx context.Context) (vault.Identity, error) {
	item, err := s.getItem(ctx, ownerKey)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", vault.ErrOwnerNotSet
	}
	owner, ok := item["identity"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("invalid identity attribute in DynamoDB")
	}
	return vault.Identity(owner.Value), nil
}

// load returns the identity's records and the version they were read at.
// Version 0 means the vault item does not exist yet.
func (s *Store) load(ctx context.Context, id vault.Identity) ([]models.Credential, uint64, error) {
	records := []models.Credential{}

	item, err := s.getItem(ctx, vaultKeyPrefix+string(id))
	if err != nil {
		return nil, 0, err
	}
	if item == nil {
		return records, 0, nil
	}

	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return nil, 0, errors.New("invalid version attribute in DynamoDB")
	}
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse version: %w", err)
	}

	recordsAttr, ok := item["records"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, 0, errors.New("invalid records attribute in DynamoDB")
	}
	if err := json.Unmarshal([]byte(recordsAttr.Value), &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return records, version, nil
}

func (s *Store) getItem(ctx context.Context, pk string) (map[string]types.AttributeValue, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from DynamoDB: %w", pk, err)
	}
	if len(resp.Item) == 0 {
		return nil, nil
	}
	return resp.Item, nil
}
