// Package sls implements a client for the SLS log service: it encodes log
// records into the service's binary log-group payload, signs every request with
// the account's symmetric access key, and exposes the write and query
// operations of the HTTP API.
//
// Basic usage:
//
//	client, err := sls.New(sls.Config{
//		Endpoint:        "cn-hangzhou.log.example.com",
//		Project:         "my-project",
//		AccessKeyID:     os.Getenv("SLS_ACCESS_KEY_ID"),
//		AccessKeySecret: os.Getenv("SLS_ACCESS_KEY_SECRET"),
//	})
//	if err != nil {
//		// handle error
//	}
//
//	entry := (&sls.LogEntity{}).Add("level", "info").Add("message", "hello")
//	err = client.PutLogs(ctx, "my-logstore", &sls.LogData{
//		Entries: []*sls.LogEntity{entry},
//		Topic:   "app",
//	})
package sls
