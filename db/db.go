package db

import (
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"mozartcheck/constants"
	"mozartcheck/model"
)

// GetPieceMetadatas looks up catalog metadata (title, catalog number,
// year) for score filenames. Returns an empty map when no metadata
// endpoint is configured; lookups degrade to "no metadata" rather than
// failing an analysis run.
func GetPieceMetadatas(filenames []string) (map[string]model.PieceMetadata, error) {
	res := make(map[string]model.PieceMetadata)

	endpoint := constants.GetMetadataEndpoint()
	if endpoint == "" || len(filenames) == 0 {
		return res, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return res, errors.New("Could not create a DynamoDB session because " + err.Error())
	}
	client := dynamodb.New(sess)

	// BatchGetItem caps at a handful of keys, so page through
	for start := 0; start < len(filenames); start += 10 {
		end := start + 10
		if end > len(filenames) {
			end = len(filenames)
		}

		var keys []map[string]*dynamodb.AttributeValue
		for _, filename := range filenames[start:end] {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(filename)},
			})
		}

		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				constants.MetadataTable: {Keys: keys},
			},
		}
		dbres, err := client.BatchGetItem(input)
		if err != nil {
			return res, errors.New("Error from DynamoDB: " + err.Error())
		}

		for _, v := range dbres.Responses[constants.MetadataTable] {
			var m model.PieceMetadata
			if v["Year"] != nil && v["Year"].N != nil {
				year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
				m.Year = uint(year)
			}
			if v["Title"] != nil && v["Title"].S != nil {
				m.Title = *v["Title"].S
			}
			if v["Catalog"] != nil && v["Catalog"].S != nil {
				m.Catalog = *v["Catalog"].S
			}
			res[*v["PK"].S] = m
		}
	}

	return res, nil
}
