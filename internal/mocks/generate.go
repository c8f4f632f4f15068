package mocks

//go:generate mockery --name Estimator --srcpkg github.com/aevon-lab/tsfeatures/internal/core/summary --output ./summary --outpkg summarymocks --with-expecter
//go:generate mockery --name Engine --srcpkg github.com/aevon-lab/tsfeatures/internal/core/fourier --output ./fourier --outpkg fouriermocks --with-expecter
