package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/trainingplan --output domain/trainingplan --outpkg trainingplanmock --filename repository_mock.go
