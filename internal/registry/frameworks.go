package registry

import "github.com/daydemir/herbie/internal/types"

func nodeDependency(minVersion string) DependencyDescriptor {
	return DependencyDescriptor{
		Name:            "node",
		CheckCommand:    "node --version",
		RequiredVersion: ">=" + minVersion,
		InstallCommandByOS: map[string]string{
			"windows": "Download from https://nodejs.org/",
			"linux":   "curl -fsSL https://deb.nodesource.com/setup_lts.x | sudo -E bash - && sudo apt-get install -y nodejs",
			"darwin":  "brew install node",
		},
	}
}

func npmDependency(minVersion string) DependencyDescriptor {
	return DependencyDescriptor{
		Name:               "npm",
		CheckCommand:       "npm --version",
		RequiredVersion:    ">=" + minVersion,
		InstallCommandByOS: sameOnAllOS("Included with Node.js"),
	}
}

func pythonDependencies() []DependencyDescriptor {
	return []DependencyDescriptor{
		{
			Name:            "python",
			CheckCommand:    "python --version",
			RequiredVersion: ">=3.8.0",
			InstallCommandByOS: map[string]string{
				"windows": "Download from https://python.org/downloads/",
				"linux":   "sudo apt-get install python3 python3-pip",
				"darwin":  "brew install python",
			},
		},
		{
			Name:               "pip",
			CheckCommand:       "pip --version",
			RequiredVersion:    ">=20.0.0",
			InstallCommandByOS: sameOnAllOS("Included with Python"),
		},
	}
}

func sameOnAllOS(cmd string) map[string]string {
	return map[string]string{"windows": cmd, "linux": cmd, "darwin": cmd}
}

func builtinFrameworks() []FrameworkDescriptor {
	return []FrameworkDescriptor{
		{
			ID:          types.FrameworkReact,
			Name:        "React",
			Description: "JavaScript library for building interactive user interfaces",
			Kind:        KindWeb,
			ScaffoldCommands: []string{
				"npx --yes create-react-app {projectName}",
				"npm create vite@latest {projectName} -- --template react",
			},
			Dependencies:         []DependencyDescriptor{nodeDependency("14.0.0"), npmDependency("6.0.0")},
			PostScaffoldCommands: []string{"npm install"},
			DevServerPort:        3000,
			StartCommand:         "npm start",
			EntryFile:            "src/App.js",
		},
		{
			ID:          types.FrameworkVue,
			Name:        "Vue.js",
			Description: "Progressive JavaScript framework for web applications",
			Kind:        KindWeb,
			ScaffoldCommands: []string{
				"npm create vue@latest {projectName} -- --default",
				"vue create {projectName}",
			},
			Dependencies:         []DependencyDescriptor{nodeDependency("16.0.0"), npmDependency("7.0.0")},
			PostScaffoldCommands: []string{"npm install"},
			DevServerPort:        5173,
			StartCommand:         "npm run dev",
			EntryFile:            "src/App.vue",
		},
		{
			ID:          types.FrameworkAngular,
			Name:        "Angular",
			Description: "TypeScript framework for robust web applications",
			Kind:        KindWeb,
			ScaffoldCommands: []string{
				"ng new {projectName} --routing --style=css --defaults",
			},
			Dependencies: []DependencyDescriptor{
				nodeDependency("18.0.0"),
				{
					Name:            "angular-cli",
					CheckCommand:    "ng version",
					RequiredVersion: ">=15.0.0",
					InstallCommandByOS: map[string]string{
						"windows": "npm install -g @angular/cli",
						"linux":   "sudo npm install -g @angular/cli",
						"darwin":  "npm install -g @angular/cli",
					},
				},
			},
			DevServerPort: 4200,
			StartCommand:  "ng serve",
			EntryFile:     "src/app/app.component.ts",
		},
		{
			ID:          types.FrameworkNextJS,
			Name:        "Next.js",
			Description: "React framework with server-side rendering and static generation",
			Kind:        KindWeb,
			ScaffoldCommands: []string{
				"npx --yes create-next-app@latest {projectName} --use-npm --yes",
				"npm create next-app@latest {projectName}",
			},
			Dependencies:  []DependencyDescriptor{nodeDependency("18.0.0"), npmDependency("8.0.0")},
			DevServerPort: 3000,
			StartCommand:  "npm run dev",
			EntryFile:     "app/page.tsx",
		},
		{
			ID:          types.FrameworkDjango,
			Name:        "Django",
			Description: "Batteries-included Python web framework",
			Kind:        KindWeb,
			ScaffoldCommands: []string{
				"django-admin startproject {projectName}",
				"python -m django startproject {projectName}",
			},
			Dependencies: append(pythonDependencies(), DependencyDescriptor{
				Name:               "django",
				CheckCommand:       "django-admin --version",
				RequiredVersion:    ">=4.0.0",
				InstallCommandByOS: sameOnAllOS("pip install django"),
			}),
			PostScaffoldCommands: []string{"python manage.py migrate"},
			DevServerPort:        8000,
			StartCommand:         "python manage.py runserver",
			EntryFile:            "{projectName}/settings.py",
		},
		{
			ID:          types.FrameworkFastAPI,
			Name:        "FastAPI",
			Description: "Modern Python framework for fast APIs",
			Kind:        KindAPI,
			ScaffoldCommands: []string{
				"mkdir {projectName}",
			},
			Dependencies: append(pythonDependencies(), DependencyDescriptor{
				Name:               "fastapi",
				CheckCommand:       `python -c "import fastapi; print(fastapi.__version__)"`,
				RequiredVersion:    ">=0.100.0",
				InstallCommandByOS: sameOnAllOS(`pip install "fastapi[standard]"`),
			}),
			PostScaffoldCommands: []string{
				`printf 'from fastapi import FastAPI\n\napp = FastAPI()\n\n\n@app.get("/")\ndef read_root():\n    return {"hello": "world"}\n' > main.py`,
				`printf 'fastapi[standard]\n' > requirements.txt`,
			},
			DevServerPort: 8000,
			StartCommand:  "fastapi dev main.py",
			EntryFile:     "main.py",
		},
		{
			ID:          types.FrameworkRails,
			Name:        "Ruby on Rails",
			Description: "Ruby framework for fast, convention-driven web development",
			Kind:        KindWeb,
			ScaffoldCommands: []string{
				"rails new {projectName}",
				"gem install rails && rails new {projectName}",
			},
			Dependencies: []DependencyDescriptor{
				{
					Name:            "ruby",
					CheckCommand:    "ruby --version",
					RequiredVersion: ">=3.0.0",
					InstallCommandByOS: map[string]string{
						"windows": "Download from https://rubyinstaller.org/",
						"linux":   "sudo apt-get install ruby-full",
						"darwin":  "brew install ruby",
					},
				},
				{
					Name:               "gem",
					CheckCommand:       "gem --version",
					RequiredVersion:    ">=3.0.0",
					InstallCommandByOS: sameOnAllOS("Included with Ruby"),
				},
				{
					Name:               "rails",
					CheckCommand:       "rails --version",
					RequiredVersion:    ">=7.0.0",
					InstallCommandByOS: sameOnAllOS("gem install rails"),
				},
			},
			PostScaffoldCommands: []string{"bundle install"},
			DevServerPort:        3000,
			StartCommand:         "rails server",
			EntryFile:            "config/routes.rb",
		},
		{
			ID:          types.FrameworkFlutter,
			Name:        "Flutter",
			Description: "Google's toolkit for cross-platform mobile applications",
			Kind:        KindMobile,
			ScaffoldCommands: []string{
				"flutter create {projectName}",
				"flutter create --platforms=android,ios {projectName}",
			},
			Dependencies: []DependencyDescriptor{
				{
					Name:            "flutter",
					CheckCommand:    "flutter --version",
					RequiredVersion: ">=3.0.0",
					InstallCommandByOS: map[string]string{
						"windows": "Download the Flutter SDK from https://docs.flutter.dev/get-started/install/windows",
						"linux":   "sudo snap install flutter --classic",
						"darwin":  "brew install --cask flutter",
					},
				},
				{
					Name:               "dart",
					CheckCommand:       "dart --version",
					RequiredVersion:    ">=2.17.0",
					InstallCommandByOS: sameOnAllOS("Included with Flutter"),
				},
			},
			PostScaffoldCommands: []string{"flutter pub get"},
			StartCommand:         "flutter run",
			EntryFile:            "lib/main.dart",
		},
	}
}
