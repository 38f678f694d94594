package testutil

import "os"

// Services holds the addresses of the backing services used by the suites.
type Services struct {
	MinioEndpoint string
	RedisAddr     string
}

// StartServices reuses TEST_MINIO_ENDPOINT and TEST_REDIS_ADDR when CI
// provides them and starts containers otherwise.
func StartServices() (*Services, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	svc := &Services{
		MinioEndpoint: os.Getenv("TEST_MINIO_ENDPOINT"),
		RedisAddr:     os.Getenv("TEST_REDIS_ADDR"),
	}

	if svc.MinioEndpoint == "" {
		mi, err := StartMinIOContainer()
		if err != nil {
			return nil, cleanup, err
		}
		cleanups = append(cleanups, mi.Cleanup)
		svc.MinioEndpoint = mi.Endpoint
	}

	if svc.RedisAddr == "" {
		ri, err := StartRedisContainer()
		if err != nil {
			return nil, cleanup, err
		}
		cleanups = append(cleanups, ri.Cleanup)
		svc.RedisAddr = ri.Addr
	}

	return svc, cleanup, nil
}
