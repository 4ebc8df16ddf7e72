// Copyright © 2023 Meroxa, Inc. & Yalantis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the part of the SNS client used by [SNSPublisher].
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes messages to Amazon SNS topics.
type SNSPublisher struct {
	client SNSAPI
}

// NewSNSPublisher creates a new instance of the [SNSPublisher].
func NewSNSPublisher(client SNSAPI) *SNSPublisher {
	return &SNSPublisher{client: client}
}

// NewDefaultSNSPublisher builds an SNS client from the default AWS credential chain.
// Empty region and endpoint leave the chain's values in place.
func NewDefaultSNSPublisher(ctx context.Context, region, endpoint string) (*SNSPublisher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := sns.NewFromConfig(cfg, func(o *sns.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return NewSNSPublisher(client), nil
}

// Publish sends msg to its topic.
func (p *SNSPublisher) Publish(ctx context.Context, msg Message) error {
	input := &sns.PublishInput{
		TopicArn:          aws.String(msg.Topic),
		Message:           aws.String(msg.Body),
		MessageAttributes: make(map[string]types.MessageAttributeValue, len(msg.Attributes)),
	}

	for _, attr := range msg.Attributes {
		input.MessageAttributes[attr.Name] = types.MessageAttributeValue{
			DataType:    aws.String(string(attr.DataType)),
			StringValue: aws.String(attr.Value),
		}
	}

	if msg.GroupID != "" {
		input.MessageGroupId = aws.String(msg.GroupID)
	}

	if msg.DeduplicationID != "" {
		input.MessageDeduplicationId = aws.String(msg.DeduplicationID)
	}

	if _, err := p.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}

	return nil
}
