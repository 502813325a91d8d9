package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSSinkSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{id: "q", queueURL: "https://sqs/queue", client: client, log: noopLogger{}}

	if err := sink.Send(context.Background(), NewNotice("portal", "access denied")); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"message":"access denied"`) {
		t.Fatalf("MessageBody missing message: %s", aws.ToString(client.input.MessageBody))
	}
	attr := client.input.MessageAttributes["level"]
	if aws.ToString(attr.StringValue) != LevelError || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("level attribute wrong: %#v", attr)
	}
}

func TestSQSSinkSendError(t *testing.T) {
	sink := &sqsSink{id: "q", client: &fakeSQSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := sink.Send(context.Background(), Notice{}); err == nil {
		t.Fatalf("expected error from Send")
	}
}

func TestSNSSinkSendSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &snsSink{id: "t", topicARN: "arn:aws:sns:::topic", client: client, log: noopLogger{}}

	if err := sink.Send(context.Background(), NewNotice("portal", "server fault")); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	if !strings.Contains(aws.ToString(client.input.Message), `"message":"server fault"`) {
		t.Fatalf("Message missing text: %s", aws.ToString(client.input.Message))
	}
	if sink.Type() != TypeSNS {
		t.Fatalf("Type = %s", sink.Type())
	}
}

func TestSNSSinkSendError(t *testing.T) {
	sink := &snsSink{id: "t", client: &fakeSNSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := sink.Send(context.Background(), Notice{}); err == nil {
		t.Fatalf("expected error from Send")
	}
}
