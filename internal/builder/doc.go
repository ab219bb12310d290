/*
Package builder turns a validated set of components into the runnable
processes of a system.

Building is a fixed sequence of phases, each bracketed by building hooks:

 1. Init: building_init_start, building_init, building_init_end. Components
    prepare the builder store (policy, environment factory, counts).

 2. Parameter server: the server is created between
    building_parameter_server_start and building_parameter_server, so the
    second hook already sees it in the store.

 3. Executors: for every executor, and once more for the evaluator,
    building_executor_start and building_executor_parameter_client run
    before the executor is created; building_executor and
    building_executor_end run after.

 4. Trainer: building_trainer_start and building_trainer_parameter_client
    run before the trainer is created; building_trainer and
    building_trainer_end after.

Launch runs building_launch_start, building_launch and building_launch_end
and then hands the processes to the launcher.
*/
package builder
